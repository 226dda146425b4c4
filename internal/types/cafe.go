package types

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"
)

// Weekday is the day of the week in the range 0-6, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayFromTime converts a time.Weekday (Sunday first) to a Weekday.
func WeekdayFromTime(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % 7)
}

// Valid reports whether the weekday is within 0-6.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the English day name.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// PreferenceTable maps a menu item name to its weight. Weights may be negative.
type PreferenceTable map[string]int

// Validate rejects entries with an empty item name.
func (p PreferenceTable) Validate() error {
	if _, ok := p[""]; ok {
		return NewAppError(ErrCodeValidationInvalidPreferences, "preference item name must not be empty", nil)
	}
	return nil
}

// CafeDetails describes a single cafe in the catalog. Menu and Distance are
// required; the weekday rules and the once-per-week flag are optional and do
// not apply when absent.
type CafeDetails struct {
	Menu              []string  `json:"menu" yaml:"menu" validate:"required"`
	Distance          *float64  `json:"distance" yaml:"distance" validate:"required,finite,gte=0"`
	ClosedWeekdays    []Weekday `json:"closed_weekdays,omitempty" yaml:"closed_weekdays" validate:"omitempty,dive,gte=0,lte=6"`
	OncePerWeek       bool      `json:"once_per_week,omitempty" yaml:"once_per_week"`
	PreferredWeekdays []Weekday `json:"preferred_weekdays,omitempty" yaml:"preferred_weekdays" validate:"omitempty,dive,gte=0,lte=6"`
}

// ClosedOn reports whether the cafe is closed on the given day.
func (c CafeDetails) ClosedOn(d Weekday) bool {
	return slices.Contains(c.ClosedWeekdays, d)
}

// PrefersDay reports whether the cafe declares the given day as preferred.
func (c CafeDetails) PrefersDay(d Weekday) bool {
	return slices.Contains(c.PreferredWeekdays, d)
}

// Catalog maps a unique cafe name to its details.
type Catalog map[string]CafeDetails

// Names returns the cafe names in ascending order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every cafe in name order and returns an
// ErrCodeValidationInvalidCafe error for the first invalid entry.
func (c Catalog) Validate() error {
	for _, name := range c.Names() {
		if name == "" {
			return NewAppError(ErrCodeValidationInvalidCafe, "cafe name must not be empty", nil)
		}
		if err := ValidateStruct(c[name], ErrCodeValidationInvalidCafe, fmt.Sprintf("invalid details for cafe %q", name)); err != nil {
			var appErr *AppError
			if errors.As(err, &appErr) {
				return appErr.WithDetails(map[string]any{"cafe": name})
			}
			return err
		}
	}
	return nil
}

// VisitHistory is the sequence of cafe names visited so far this week.
// Repeats are allowed.
type VisitHistory []string

// Counts reduces the history to a visit count per cafe name. The result is a
// fresh map on every call.
func (h VisitHistory) Counts() map[string]int {
	counts := make(map[string]int, len(h))
	for _, name := range h {
		counts[name]++
	}
	return counts
}
