package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/conductor/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logHooks forwards navigation diagnostics to a structured logger. Applied
// transitions log at debug level; degraded requests (drops, exhausted
// retries) log at warn so they stand out in default output.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnPresented(route, style string, depth int) {
	h.logger.Debug("presented", "route", route, "style", style, "depth", depth)
}

func (h *logHooks) OnDismissed(removed, depth int, animated bool) {
	h.logger.Debug("dismissed", "removed", removed, "depth", depth, "animated", animated)
}

func (h *logHooks) OnQueued(route string, queueLen int) {
	h.logger.Debug("queued", "route", route, "pending", queueLen)
}

func (h *logHooks) OnQueueCapacityExceeded(route string, limit int) {
	h.logger.Warn("presentation dropped: queue full", "route", route, "limit", limit)
}

func (h *logHooks) OnRetryScheduled(attempt, limit int) {
	h.logger.Debug("dismiss blocked, retrying", "attempt", attempt, "limit", limit)
}

func (h *logHooks) OnRetryExhausted(limit int) {
	h.logger.Warn("dismiss dropped: retry budget exhausted", "limit", limit)
}

func (h *logHooks) OnAmbiguousMatch(route string, count int) {
	h.logger.Warn("route occurs multiple times, first match used", "route", route, "count", count)
}

func (h *logHooks) OnNoOp(reason observability.NoOpReason) {
	h.logger.Debug("no-op", "reason", reason)
}
