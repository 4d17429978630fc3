package figtext

import (
	"context"
	"time"
)

// Export is the extracted text of one target, ready to be written out.
type Export struct {
	Document    string
	Page        string
	Target      string
	Text        string
	ExtractedAt time.Time
}

// Validate returns an error if the export contains invalid fields.
func (e *Export) Validate() error {
	if e.Target == "" {
		return Errorf(EINVALID, "export target required")
	}
	return nil
}

// ExportWriter persists exports, e.g. one file per target.
type ExportWriter interface {
	WriteExport(ctx context.Context, e *Export) error
}
