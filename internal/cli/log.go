package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridkit/pkg/observability"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Saved home (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports editor and store events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnComponentAdded(id, typ string) {
	h.logger.Debug("component added", "id", id, "type", typ)
}

func (h *logHooks) OnComponentDeleted(id string) {
	h.logger.Debug("component deleted", "id", id)
}

func (h *logHooks) OnGestureStart(id, bp string) {
	h.logger.Debug("gesture started", "id", id, "breakpoint", bp)
}

func (h *logHooks) OnGestureEnd(id, bp string, steps int, cancelled bool) {
	h.logger.Debug("gesture ended", "id", id, "breakpoint", bp, "steps", steps, "cancelled", cancelled)
}

func (h *logHooks) OnLoad(_ context.Context, backend, pageID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("page load failed", "backend", backend, "page", pageID, "err", err)
		return
	}
	h.logger.Debug("page loaded", "backend", backend, "page", pageID, "elapsed", d.Round(time.Microsecond))
}

func (h *logHooks) OnSave(_ context.Context, backend, pageID string, n int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("page save failed", "backend", backend, "page", pageID, "err", err)
		return
	}
	h.logger.Debug("page saved", "backend", backend, "page", pageID, "components", n, "elapsed", d.Round(time.Microsecond))
}

var (
	_ observability.EditorHooks = (*logHooks)(nil)
	_ observability.StoreHooks  = (*logHooks)(nil)
)
