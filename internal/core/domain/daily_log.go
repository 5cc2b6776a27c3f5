package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidLogValue  = errors.New("log value must be a boolean or a number")
	ErrLogModeMismatch  = errors.New("log value does not match the habit tracking mode")
	ErrNegativeLogValue = errors.New("log value cannot be negative")
	ErrFutureLog        = errors.New("cannot log a date after today")
	ErrLogImmutable     = errors.New("only today's log can be changed")
	ErrLogNotFound      = errors.New("daily log not found")
)

// LogValue is either a boolean (Qualitative habits) or a number (Quantitative habits).
// The zero LogValue carries no value.
type LogValue struct {
	mode   TrackingMode
	flag   bool
	amount float64
}

func BoolValue(v bool) LogValue {
	return LogValue{mode: ModeQualitative, flag: v}
}

func NumberValue(v float64) LogValue {
	return LogValue{mode: ModeQuantitative, amount: v}
}

func (v LogValue) Mode() TrackingMode { return v.mode }
func (v LogValue) IsZero() bool       { return v.mode == "" }

func (v LogValue) Bool() (bool, bool) {
	return v.flag, v.mode == ModeQualitative
}

func (v LogValue) Number() (float64, bool) {
	return v.amount, v.mode == ModeQuantitative
}

func (v LogValue) String() string {
	switch v.mode {
	case ModeQualitative:
		return fmt.Sprintf("%t", v.flag)
	case ModeQuantitative:
		return fmt.Sprintf("%g", v.amount)
	}
	return "<none>"
}

func (v LogValue) MarshalJSON() ([]byte, error) {
	switch v.mode {
	case ModeQualitative:
		return json.Marshal(v.flag)
	case ModeQuantitative:
		return json.Marshal(v.amount)
	}
	return []byte("null"), nil
}

func (v *LogValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = LogValue{}
	case bytes.Equal(data, []byte("true")):
		*v = BoolValue(true)
	case bytes.Equal(data, []byte("false")):
		*v = BoolValue(false)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidLogValue, string(data))
		}
		*v = NumberValue(n)
	}
	return nil
}

type DailyLog struct {
	Date   Date     `json:"date"`
	Value  LogValue `json:"value"`
	Logged bool     `json:"logged"`
}

// SortLogs orders logs by date ascending in place.
func SortLogs(logs []DailyLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
}
