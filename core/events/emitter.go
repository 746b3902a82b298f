package events

import (
	"log/slog"

	"blocktrack/core/types"
)

// attributed is satisfied by events that can render themselves as a generic
// attribute map.
type attributed interface {
	Event() *types.Event
}

// LogEmitter writes every emitted event to structured logs. It is the default
// production sink; richer consumers (indexers, websockets) can replace it via
// SetEmitter on the emitting component.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter wires a log-backed emitter. A nil logger falls back to the
// process default.
func NewLogEmitter(logger *slog.Logger) LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return LogEmitter{logger: logger}
}

// Emit implements the Emitter interface.
func (l LogEmitter) Emit(evt Event) {
	if evt == nil {
		return
	}
	args := []any{"event", evt.EventType()}
	if a, ok := evt.(attributed); ok {
		if rendered := a.Event(); rendered != nil {
			for key, value := range rendered.Attributes {
				args = append(args, key, value)
			}
		}
	}
	l.logger.Info("event emitted", args...)
}
