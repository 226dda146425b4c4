package types

import "time"

// Validator is implemented by entities to self-validate.
type Validator interface {
	Validate() error
}

var (
	_ Validator = WeatherReading{}
	_ Validator = WeatherInput{}
	_ Validator = PreferenceTable(nil)
	_ Validator = Catalog(nil)
)

// ValidateAll runs each validator in order and returns the first error.
// Nil validators are skipped.
func ValidateAll(vs ...Validator) error {
	for _, v := range vs {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time (always UTC).
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time { return time.Now().UTC() }

// FixedClock is a Clock that always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }
