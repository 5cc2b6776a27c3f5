package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

var (
	ErrHabitNotInExport = errors.New("habit not found in export")
	ErrNullExportEntry  = errors.New("null habit entry in export")
)

// LoadExport reads a habit list in the API's JSON shape, logs included.
func LoadExport(r io.Reader) ([]*domain.Habit, error) {
	var habits []*domain.Habit
	if err := json.NewDecoder(r).Decode(&habits); err != nil {
		return nil, fmt.Errorf("failed to decode habit export: %w", err)
	}

	for i, h := range habits {
		if h == nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNullExportEntry)
		}
		if !h.Polarity.Valid() {
			return nil, fmt.Errorf("habit %d: %w", h.ID, domain.ErrInvalidPolarity)
		}
		domain.SortLogs(h.Logs)
	}
	return habits, nil
}

func LoadExportFile(path string) ([]*domain.Habit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return LoadExport(f)
}

func FindHabit(habits []*domain.Habit, id int64) (*domain.Habit, error) {
	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrHabitNotInExport, id)
}

// EvaluateAll runs the engine over every exported habit for the same period.
func EvaluateAll(habits []*domain.Habit, period domain.Period, mode domain.IntervalMode, today domain.Date) []metrics.Report {
	reports := make([]metrics.Report, 0, len(habits))
	for _, h := range habits {
		reports = append(reports, metrics.EvaluateHabit(h, period, mode, today))
	}
	return reports
}
