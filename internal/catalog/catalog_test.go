package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunchofficer/internal/types"
)

func TestLoad_Testdata(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "cafes.yaml"))
	require.NoError(t, err)

	assert.Equal(t, types.PreferenceTable{"soup": 3, "salad": 2, "fish": -1}, f.Preferences)
	assert.Equal(t, []string{"Buffet", "Pihka", "Silva"}, f.Cafes.Names())

	silva := f.Cafes["Silva"]
	assert.Equal(t, []string{"soup", "bread"}, silva.Menu)
	require.NotNil(t, silva.Distance)
	assert.Equal(t, 1.5, *silva.Distance)
	assert.Equal(t, []types.Weekday{types.Saturday, types.Sunday}, silva.ClosedWeekdays)
	assert.False(t, silva.OncePerWeek)

	assert.True(t, f.Cafes["Buffet"].OncePerWeek)
	assert.Equal(t, []types.Weekday{types.Friday}, f.Cafes["Pihka"].PreferredWeekdays)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeNotFoundCatalog, appErr.Code)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code types.ErrorCode
	}{
		{
			name: "empty document",
			doc:  "",
			code: types.ErrCodeValidationMissingField,
		},
		{
			name: "no cafes",
			doc:  "preferences: {soup: 1}\n",
			code: types.ErrCodeValidationMissingField,
		},
		{
			name: "missing distance",
			doc:  "cafes:\n  Silva:\n    menu: [soup]\n",
			code: types.ErrCodeValidationInvalidCafe,
		},
		{
			name: "missing menu",
			doc:  "cafes:\n  Silva:\n    distance: 1\n",
			code: types.ErrCodeValidationInvalidCafe,
		},
		{
			name: "misspelt field",
			doc:  "cafes:\n  Silva:\n    menu: []\n    distance: 1\n    closed_weekday: [1]\n",
			code: types.ErrCodeValidationInvalidCafe,
		},
		{
			name: "weekday out of range",
			doc:  "cafes:\n  Silva:\n    menu: []\n    distance: 1\n    closed_weekdays: [9]\n",
			code: types.ErrCodeValidationInvalidCafe,
		},
		{
			name: "wrong type",
			doc:  "cafes:\n  Silva:\n    menu: []\n    distance: far\n",
			code: types.ErrCodeValidationInvalidCafe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)

			var appErr *types.AppError
			require.True(t, errors.As(err, &appErr), "got %v", err)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestParse_EmptyMenuAndZeroDistanceAllowed(t *testing.T) {
	f, err := Parse([]byte("cafes:\n  Canteen:\n    menu: []\n    distance: 0\n"))
	require.NoError(t, err)
	assert.NotNil(t, f.Cafes["Canteen"].Menu)
	assert.Equal(t, 0.0, *f.Cafes["Canteen"].Distance)
	assert.NotNil(t, f.Preferences)
}

func TestParse_EmptyPreferenceName(t *testing.T) {
	_, err := Parse([]byte("preferences: {\"\": 1}\ncafes:\n  Silva: {menu: [soup], distance: 1}\n"))

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeValidationInvalidPreferences, appErr.Code)
}

func TestParse_NonFiniteDistance(t *testing.T) {
	for _, d := range []string{".inf", "-.inf", ".nan"} {
		t.Run(d, func(t *testing.T) {
			_, err := Parse([]byte("cafes:\n  Far:\n    menu: [soup]\n    distance: " + d + "\n"))

			var appErr *types.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, types.ErrCodeValidationInvalidCafe, appErr.Code)
			assert.Equal(t, "Far", appErr.Details["cafe"])
		})
	}
}
