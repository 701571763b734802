package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/voxmetric/call-timeline/internal/core/event"
)

// MemoryProvider is an in-memory event source. It backs tests and embedders
// that manage events programmatically rather than from a store.
type MemoryProvider struct {
	mu        sync.RWMutex
	eventType string
	config    TimelineConfig
	events    map[string]event.TemporalEvent
	nextId    int
}

// NewMemoryProvider creates an empty in-memory provider for one event type.
func NewMemoryProvider(eventType string, config TimelineConfig) *MemoryProvider {
	return &MemoryProvider{
		eventType: eventType,
		config:    config,
		events:    make(map[string]event.TemporalEvent),
	}
}

// Seed inserts events directly, bypassing id assignment. Intended for test
// fixtures and initial state.
func (p *MemoryProvider) Seed(events ...event.TemporalEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range events {
		p.events[e.Id] = e
	}
}

func (p *MemoryProvider) Type() string {
	return p.eventType
}

func (p *MemoryProvider) TimelineConfig() TimelineConfig {
	return p.config
}

func (p *MemoryProvider) FetchEvents(ctx context.Context) ([]event.TemporalEvent, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]event.TemporalEvent, 0, len(p.events))
	for _, e := range p.events {
		result = append(result, e)
	}
	return result, nil
}

func (p *MemoryProvider) CreateEvent(ctx context.Context, e event.TemporalEvent) (event.TemporalEvent, error) {
	if err := event.Validate(e); err != nil {
		return event.TemporalEvent{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if e.Id == "" {
		// Skip ids taken by seeded events
		for {
			p.nextId++
			id := fmt.Sprintf("%s-%d", p.eventType, p.nextId)
			if _, taken := p.events[id]; !taken {
				e.Id = id
				break
			}
		}
	}
	e.Type = p.eventType
	p.events[e.Id] = e
	return e, nil
}

func (p *MemoryProvider) UpdateEvent(ctx context.Context, id string, patch event.Patch) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	existing, ok := p.events[id]
	if !ok {
		return fmt.Errorf("memory provider %s: %w", p.eventType, event.ErrEventNotFound)
	}

	updated := patch.Apply(existing)
	if err := event.Validate(updated); err != nil {
		return err
	}
	p.events[id] = updated
	return nil
}

func (p *MemoryProvider) DeleteEvent(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.events[id]; !ok {
		return fmt.Errorf("memory provider %s: %w", p.eventType, event.ErrEventNotFound)
	}
	delete(p.events, id)
	return nil
}
