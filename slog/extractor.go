// Package slog provides logging decorators for figtext services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/figtext"
)

// Ensure LoggingExtractor implements figtext.Extractor.
var _ figtext.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   figtext.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next figtext.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractTargets delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractTargets(ctx context.Context, page *figtext.Node, names []string, opts figtext.Options) (text string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract targets",
			"page", pageName(page),
			"targets", names,
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractTargets(ctx, page, names, opts)
}

// ExtractPage delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractPage(ctx context.Context, page *figtext.Node, opts figtext.Options) (text string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract page",
			"page", pageName(page),
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractPage(ctx, page, opts)
}

func pageName(page *figtext.Node) string {
	if page == nil {
		return ""
	}
	return page.Name
}
