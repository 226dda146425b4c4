package catalog

import "context"

// Probe reports whether the catalog file at Path is still readable and valid.
// It satisfies core.HealthProbe.
type Probe struct {
	Path string
}

// NewProbe returns a health probe for the catalog file at path.
func NewProbe(path string) *Probe {
	return &Probe{Path: path}
}

func (p *Probe) Name() string { return "catalog" }

// Check reloads the file. The service keeps serving the catalog it loaded at
// startup, so a failure here only flags drift on disk.
func (p *Probe) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := Load(p.Path)
	return err
}
