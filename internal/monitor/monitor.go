package monitor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"quant-core/internal/events"
)

// Monitor logs risk alerts published by the decision loop.
type Monitor struct {
	bus *events.Bus
	log *zap.Logger
}

func New(bus *events.Bus, log *zap.Logger) *Monitor {
	return &Monitor{bus: bus, log: log}
}

// Start watches the risk-alert topic until the context ends.
func (m *Monitor) Start(ctx context.Context) {
	stream, unsub := m.bus.Subscribe(events.EventRiskAlert, 50)
	go func() {
		defer unsub()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-stream:
				if !ok {
					return
				}
				m.log.Warn("risk alert", zap.String("detail", toString(msg)))
			}
		}
	}()
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
