package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time-of-day label in "HH:MM" 24-hour
// format. Slot labels are naive local times: no timezone handling is applied
// anywhere in the service, they are compared and stored as-is.
type TimeString string

const timeStringLayout = "15:04"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of the 00:00-23:59 range")
)

// NewTimeString creates a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" label.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a zero-padded label from minutes since
// midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", ErrTimeOutOfRange
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String returns the raw "HH:MM" label.
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is unset.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the "HH:MM" format and range.
func (t TimeString) Validate() error {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	// time.Parse принимает "9:30" без ведущего нуля - требуем каноничную форму
	if parsed.Format(timeStringLayout) != string(t) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes returns minutes since midnight. The value must be valid.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the label shifted forward by the given number of
// minutes. Fails if the result leaves the current day.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore reports whether t is strictly earlier than other.
// Lexicographic comparison of zero-padded HH:MM labels is chronological.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// DistanceMinutes returns the absolute distance in minutes between two
// labels. Both must be valid.
func (t TimeString) DistanceMinutes(other TimeString) (int, error) {
	a, err := t.Minutes()
	if err != nil {
		return 0, err
	}
	b, err := other.Minutes()
	if err != nil {
		return 0, err
	}
	if a > b {
		return a - b, nil
	}
	return b - a, nil
}

// Scan implements sql.Scanner. Поддерживает varchar, time и NULL колонки.
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, value)
	}
}

func (t *TimeString) scanString(s string) error {
	// postgres TIME приходит как "HH:MM:SS" - отрезаем секунды
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}
