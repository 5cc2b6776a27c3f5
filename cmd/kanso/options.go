package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
)

type options struct {
	file     string
	period   string
	mode     string
	today    string
	timezone string
	noColor  bool
}

func (o *options) bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.file, "file", "f", "", "habit export (JSON list of habits with daily_logs)")
	flags.StringVarP(&o.period, "period", "p", "week", "week, month, quarter or year")
	flags.StringVarP(&o.mode, "mode", "m", "calendar", "calendar or rolling")
	flags.StringVar(&o.today, "today", "", "evaluate as of this date (YYYY-MM-DD), defaults to the current day")
	flags.StringVar(&o.timezone, "timezone", "Local", "time zone used to compute the current day")
	flags.BoolVar(&o.noColor, "no-color", false, "disable coloured output")
}

type evaluation struct {
	period domain.Period
	mode   domain.IntervalMode
	today  domain.Date
}

func (o *options) resolve() (evaluation, error) {
	if o.noColor {
		color.NoColor = true
	}
	if o.file == "" {
		return evaluation{}, fmt.Errorf("--file is required")
	}

	period, err := domain.ParsePeriod(o.period)
	if err != nil {
		return evaluation{}, err
	}
	mode, err := domain.ParseIntervalMode(o.mode)
	if err != nil {
		return evaluation{}, err
	}

	var today domain.Date
	if o.today != "" {
		if today, err = domain.ParseDate(o.today); err != nil {
			return evaluation{}, err
		}
	} else {
		loc, err := time.LoadLocation(o.timezone)
		if err != nil {
			return evaluation{}, fmt.Errorf("unknown timezone %q: %w", o.timezone, err)
		}
		today = domain.Today(loc)
	}

	return evaluation{period: period, mode: mode, today: today}, nil
}
