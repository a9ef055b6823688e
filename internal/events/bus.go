// Package events carries decision-loop output to the reporting surfaces.
package events

import (
	"sync"
)

// Event enumerates the topics published by the decision loop.
type Event string

const (
	// EventSnapshot is the per-cycle engine state for dashboards.
	EventSnapshot Event = "snapshot"
	// EventTradeClosed fires once per closed position.
	EventTradeClosed Event = "trade_closed"
	// EventRiskAlert fires on forced exits (stop loss, trailing stop).
	EventRiskAlert Event = "risk_alert"
)

// Bus is a lightweight channel-based pub/sub broker.
type Bus struct {
	mu   sync.RWMutex
	subs map[Event][]chan any
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Event][]chan any)}
}

// Subscribe registers a listener and returns its channel plus an unsubscribe
// function. The channel is closed on unsubscribe.
func (b *Bus) Subscribe(e Event, buffer int) (<-chan any, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan any, buffer)
	b.subs[e] = append(b.subs[e], ch)

	unsub := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[e]
		for i, c := range subs {
			if c == ch {
				close(c)
				b.subs[e] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}

	return ch, unsub
}

// Publish fans the payload out without blocking: a subscriber whose buffer
// is full misses the event rather than stalling the decision loop.
func (b *Bus) Publish(e Event, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[e] {
		select {
		case ch <- payload:
		default:
		}
	}
}
