// Package lifecycle wraps command and stage execution with timing and a
// completion callback.
package lifecycle

import (
	"time"

	"github.com/rs/zerolog"
)

// NotificationHandler receives command and stage completions.
type NotificationHandler interface {
	// OnCommandComplete is called when a command finishes.
	OnCommandComplete(name string, success bool, duration time.Duration)

	// OnStageComplete is called when a stage (parse, validate) finishes.
	OnStageComplete(name string, success bool)
}

// LogHandler reports completions to a zerolog logger: commands at info,
// stages at debug, failures at warn.
type LogHandler struct {
	Logger zerolog.Logger
}

// NewLogHandler returns a LogHandler writing to l.
func NewLogHandler(l zerolog.Logger) *LogHandler {
	return &LogHandler{Logger: l}
}

// OnCommandComplete implements NotificationHandler.
func (h *LogHandler) OnCommandComplete(name string, success bool, duration time.Duration) {
	if h == nil {
		return
	}
	ev := h.Logger.Info()
	if !success {
		ev = h.Logger.Warn()
	}
	ev.Str("command", name).
		Bool("success", success).
		Dur("duration", duration).
		Msg("command complete")
}

// OnStageComplete implements NotificationHandler.
func (h *LogHandler) OnStageComplete(name string, success bool) {
	if h == nil {
		return
	}
	ev := h.Logger.Debug()
	if !success {
		ev = h.Logger.Warn()
	}
	ev.Str("stage", name).Bool("success", success).Msg("stage complete")
}
