package testutil

import (
	"context"
	"sync"

	"chat-reactions-be/pkg/events"
)

// RecordingPublisher stores every published event. Set Err to make every
// publish fail.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	Err    error
	closed bool
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Event, len(p.events))
	copy(out, p.events)
	return out
}

// RoutingKeys returns the routing keys of recorded events as a set.
func (p *RecordingPublisher) RoutingKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	for _, e := range p.Events() {
		keys[e.RoutingKey()] = struct{}{}
	}
	return keys
}
