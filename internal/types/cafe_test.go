package types

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distance(d float64) *float64 { return &d }

func TestWeekdayFromTime(t *testing.T) {
	cases := map[time.Weekday]Weekday{
		time.Monday:    Monday,
		time.Wednesday: Wednesday,
		time.Saturday:  Saturday,
		time.Sunday:    Sunday,
	}
	for in, want := range cases {
		assert.Equal(t, want, WeekdayFromTime(in), in.String())
	}
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "Weekday(9)", Weekday(9).String())
	assert.False(t, Weekday(-1).Valid())
	assert.True(t, Friday.Valid())
}

func TestVisitHistoryCounts(t *testing.T) {
	h := VisitHistory{"Silva", "Pihka", "Silva"}
	assert.Equal(t, map[string]int{"Silva": 2, "Pihka": 1}, h.Counts())

	var empty VisitHistory
	assert.Empty(t, empty.Counts())
}

func TestVisitHistoryCounts_ReturnsFreshMap(t *testing.T) {
	h := VisitHistory{"Silva"}
	first := h.Counts()
	first["Silva"] = 100

	assert.Equal(t, 1, h.Counts()["Silva"])
}

func TestCafeDetailsDayRules(t *testing.T) {
	c := CafeDetails{
		Menu:              []string{"soup"},
		Distance:          distance(1),
		ClosedWeekdays:    []Weekday{Saturday, Sunday},
		PreferredWeekdays: []Weekday{Friday},
	}
	assert.True(t, c.ClosedOn(Sunday))
	assert.False(t, c.ClosedOn(Monday))
	assert.True(t, c.PrefersDay(Friday))
	assert.False(t, c.PrefersDay(Thursday))

	var bare CafeDetails
	assert.False(t, bare.ClosedOn(Monday))
	assert.False(t, bare.PrefersDay(Monday))
}

func TestCatalogNames_Sorted(t *testing.T) {
	c := Catalog{
		"Silva": {Menu: []string{}, Distance: distance(1)},
		"Aalto": {Menu: []string{}, Distance: distance(2)},
		"Pihka": {Menu: []string{}, Distance: distance(3)},
	}
	assert.Equal(t, []string{"Aalto", "Pihka", "Silva"}, c.Names())
}

func TestCatalogValidate(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		c := Catalog{
			"Silva": {Menu: []string{"soup"}, Distance: distance(0), ClosedWeekdays: []Weekday{Sunday}},
		}
		assert.NoError(t, c.Validate())
	})

	t.Run("missing distance", func(t *testing.T) {
		c := Catalog{"Silva": {Menu: []string{"soup"}}}
		err := c.Validate()
		require.Error(t, err)

		var appErr *AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, ErrCodeValidationInvalidCafe, appErr.Code)
		assert.Equal(t, "Silva", appErr.Details["cafe"])

		fields, ok := appErr.Details["fields"].([]FieldViolation)
		require.True(t, ok)
		require.Len(t, fields, 1)
		assert.Equal(t, "distance", fields[0].Field)
		assert.Equal(t, "required", fields[0].Tag)
	})

	t.Run("missing menu", func(t *testing.T) {
		c := Catalog{"Silva": {Distance: distance(1)}}
		err := c.Validate()

		var appErr *AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, ErrCodeValidationInvalidCafe, appErr.Code)
	})

	t.Run("negative distance", func(t *testing.T) {
		c := Catalog{"Silva": {Menu: []string{}, Distance: distance(-1)}}
		assert.Error(t, c.Validate())
	})

	t.Run("non-finite distance", func(t *testing.T) {
		for _, d := range []float64{math.Inf(1), math.NaN()} {
			c := Catalog{"Silva": {Menu: []string{}, Distance: distance(d)}}
			err := c.Validate()

			var appErr *AppError
			require.True(t, errors.As(err, &appErr), "distance %v", d)
			assert.Equal(t, ErrCodeValidationInvalidCafe, appErr.Code)
			fields := appErr.Details["fields"].([]FieldViolation)
			assert.Equal(t, "finite", fields[0].Tag)
			assert.Equal(t, "distance must be a finite number", fields[0].Message)
		}
	})

	t.Run("weekday out of range", func(t *testing.T) {
		c := Catalog{"Silva": {Menu: []string{}, Distance: distance(1), PreferredWeekdays: []Weekday{7}}}
		err := c.Validate()

		var appErr *AppError
		require.True(t, errors.As(err, &appErr))
		fields := appErr.Details["fields"].([]FieldViolation)
		assert.Equal(t, "preferred_weekdays[0]", fields[0].Field)
	})

	t.Run("empty name", func(t *testing.T) {
		c := Catalog{"": {Menu: []string{}, Distance: distance(1)}}
		assert.Error(t, c.Validate())
	})
}

func TestPreferenceTableValidate(t *testing.T) {
	assert.NoError(t, PreferenceTable(nil).Validate())
	assert.NoError(t, PreferenceTable{"soup": -2}.Validate())

	err := PreferenceTable{"": 1}.Validate()
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrCodeValidationInvalidPreferences, appErr.Code)
}
