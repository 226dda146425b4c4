// Package catalog loads the cafe catalog and default food preferences from a
// YAML file.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"lunchofficer/internal/types"
)

// File is the parsed content of a catalog file.
type File struct {
	Preferences types.PreferenceTable `yaml:"preferences"`
	Cafes       types.Catalog         `yaml:"cafes"`
}

// Parse decodes and validates a catalog document. Unknown keys are rejected
// so that a misspelt optional field does not silently disable its rule.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, types.NewAppError(types.ErrCodeValidationMissingField, "catalog document is empty", err)
		}
		return nil, types.NewAppError(types.ErrCodeValidationInvalidCafe, "malformed catalog document", err)
	}

	if len(f.Cafes) == 0 {
		return nil, types.NewAppError(types.ErrCodeValidationMissingField, "catalog must define at least one cafe", nil)
	}
	if err := f.Preferences.Validate(); err != nil {
		return nil, err
	}
	if err := f.Cafes.Validate(); err != nil {
		return nil, err
	}
	if f.Preferences == nil {
		f.Preferences = types.PreferenceTable{}
	}
	return &f, nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.NewAppErrorWithDetails(
				types.ErrCodeNotFoundCatalog,
				"catalog file not found",
				err,
				map[string]any{"path": path},
			)
		}
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return f, nil
}
