package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

var (
	levelColors = map[domain.Level]*color.Color{
		domain.LevelInternalized: color.New(color.FgGreen, color.Bold),
		domain.LevelStable:       color.New(color.FgYellow),
		domain.LevelEmerging:     color.New(color.FgRed),
	}
	statusColors = map[domain.Status]*color.Color{
		domain.StatusCompleted: color.New(color.FgGreen),
		domain.StatusPending:   color.New(color.FgCyan),
		domain.StatusMissed:    color.New(color.FgYellow),
		domain.StatusAtRisk:    color.New(color.FgRed, color.Bold),
	}
	bold = color.New(color.Bold)
)

// heatmapGlyphs is indexed by intensity bucket.
var heatmapGlyphs = []string{"·", "░", "▒", "▓", "█"}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func RenderReports(w io.Writer, reports []metrics.Report) error {
	if len(reports) == 0 {
		_, err := fmt.Fprintln(w, "No habits to report.")
		return err
	}

	r := reports[0]
	if _, err := fmt.Fprintf(w, "%s %s (%s .. %s)\n\n",
		bold.Sprint(strings.ToUpper(string(r.Period))), r.Mode, r.Start, r.End); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHABIT\tENTRIES\tCONSISTENCY\tRECOVERY\tSTABILITY\tSCORE\tLEVEL\tMISSED\tTODAY")
	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d%%\t%.1f\t%d%%\t%d\t%s\t%d\t%s\n",
			r.HabitID, r.HabitName, r.Entries,
			r.Consistency, r.RecoveryLatency, r.Stability, r.CompositeScore,
			paint(levelColors[r.Level], string(r.Level)),
			r.MissedStreak,
			paint(statusColors[r.TodayStatus], string(r.TodayStatus)),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, r := range reports {
		if r.NeedsReflection {
			if _, err := fmt.Fprintf(w, "\n%s %q has %d misses in a row, take a moment to reflect.\n",
				paint(statusColors[domain.StatusAtRisk], "!"), r.HabitName, r.MissedStreak); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderHeatmap prints one row per weekday and one column per week.
func RenderHeatmap(w io.Writer, title string, weeks [][]metrics.HeatmapCell) error {
	if _, err := fmt.Fprintln(w, bold.Sprint(title)); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	for day, label := range days {
		var row strings.Builder
		row.WriteString(label)
		row.WriteString(" ")
		for _, week := range weeks {
			cell := week[day]
			switch {
			case !cell.InRange:
				row.WriteString(" ")
			case cell.Bucket == 0:
				row.WriteString(heatmapGlyphs[0])
			default:
				row.WriteString(green.Sprint(heatmapGlyphs[cell.Bucket]))
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nless %s more\n", strings.Join(heatmapGlyphs, ""))
	return err
}
