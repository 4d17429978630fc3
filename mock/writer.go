package mock

import (
	"context"

	"github.com/fwojciec/figtext"
)

var _ figtext.ExportWriter = (*ExportWriter)(nil)

// ExportWriter is a mock implementation of figtext.ExportWriter.
type ExportWriter struct {
	WriteExportFn func(ctx context.Context, e *figtext.Export) error
}

func (w *ExportWriter) WriteExport(ctx context.Context, e *figtext.Export) error {
	return w.WriteExportFn(ctx, e)
}
