package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/figtext"
)

// Ensure LoggingComponentResolver implements figtext.ComponentResolver.
var _ figtext.ComponentResolver = (*LoggingComponentResolver)(nil)

// LoggingComponentResolver wraps a ComponentResolver with debug logging.
// Failed or empty lookups are logged at warn level.
type LoggingComponentResolver struct {
	next   figtext.ComponentResolver
	logger *slog.Logger
}

// NewLoggingComponentResolver creates a new LoggingComponentResolver.
func NewLoggingComponentResolver(next figtext.ComponentResolver, logger *slog.Logger) *LoggingComponentResolver {
	return &LoggingComponentResolver{next: next, logger: logger}
}

// ResolveComponent delegates to the wrapped resolver and logs the lookup.
func (r *LoggingComponentResolver) ResolveComponent(ctx context.Context, id string) (c *figtext.Component, err error) {
	defer func(begin time.Time) {
		if err != nil {
			r.logger.Warn("resolve component",
				"id", id,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		if c == nil {
			r.logger.Warn("resolve component",
				"id", id,
				"duration", time.Since(begin),
				"err", "no component returned",
			)
			return
		}
		r.logger.Debug("resolve component",
			"id", id,
			"name", c.Name,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.ResolveComponent(ctx, id)
}
