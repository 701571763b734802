package aggregator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/voxmetric/call-timeline/internal/core/event"
	"github.com/voxmetric/call-timeline/internal/data/provider"
	"github.com/voxmetric/call-timeline/internal/util"
)

// Aggregator owns the canonical in-memory event collection for one timeline
// instance. It fans out loads to the registered providers and routes
// mutations back to the provider that owns each event type. The collection
// is always kept stably sorted ascending by start time.
type Aggregator struct {
	mu          sync.RWMutex
	providers   map[string]provider.Provider
	events      []event.TemporalEvent
	subscribers map[int]func([]event.TemporalEvent)
	nextSubId   int
}

// fetchResult carries one provider's contribution out of the load fan-out.
type fetchResult struct {
	eventType string
	events    []event.TemporalEvent
	err       error
}

// New creates an aggregator with no providers registered.
func New() *Aggregator {
	return &Aggregator{
		providers:   make(map[string]provider.Provider),
		subscribers: make(map[int]func([]event.TemporalEvent)),
	}
}

// RegisterProvider adds a provider to the registry. Registering a second
// provider for the same type replaces the first.
func (a *Aggregator) RegisterProvider(p provider.Provider) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.providers[p.Type()] = p
}

// Providers returns the registered providers keyed by event type.
func (a *Aggregator) Providers() map[string]provider.Provider {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[string]provider.Provider, len(a.providers))
	for k, v := range a.providers {
		out[k] = v
	}
	return out
}

// LoadEvents fetches from every registered provider concurrently, merges the
// results into one sorted collection and notifies subscribers. A failing
// provider is logged and contributes nothing; it never aborts the load.
func (a *Aggregator) LoadEvents(ctx context.Context) ([]event.TemporalEvent, error) {
	a.mu.RLock()
	providers := make([]provider.Provider, 0, len(a.providers))
	for _, p := range a.providers {
		providers = append(providers, p)
	}
	a.mu.RUnlock()

	results := make(chan fetchResult, len(providers))
	var wg sync.WaitGroup

	for _, p := range providers {
		wg.Add(1)
		go func(p provider.Provider) {
			defer wg.Done()
			events, err := p.FetchEvents(ctx)
			results <- fetchResult{eventType: p.Type(), events: events, err: err}
		}(p)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var merged []event.TemporalEvent
	for res := range results {
		if res.err != nil {
			util.LogWarnf("Provider %s fetch failed, contributing no events: %v", res.eventType, res.err)
			continue
		}
		for _, e := range res.events {
			if err := event.Validate(e); err != nil {
				util.LogDebugf("Rejected event from provider %s: %v", res.eventType, err)
				continue
			}
			merged = append(merged, e)
		}
	}

	sortByStartTime(merged)

	a.mu.Lock()
	a.events = merged
	a.mu.Unlock()

	a.notify()

	util.LogDebugf("Loaded %d events from %d providers", len(merged), len(providers))
	return a.Events(), nil
}

// CreateEvent delegates creation to the provider owning the event's type,
// then mirrors the created event into the collection.
func (a *Aggregator) CreateEvent(ctx context.Context, e event.TemporalEvent) (event.TemporalEvent, error) {
	if err := event.Validate(e); err != nil {
		return event.TemporalEvent{}, err
	}

	p, err := a.providerFor(e.Type)
	if err != nil {
		return event.TemporalEvent{}, err
	}

	created, err := p.CreateEvent(ctx, e)
	if err != nil {
		return event.TemporalEvent{}, fmt.Errorf("create event: %w", err)
	}

	a.mu.Lock()
	a.events = append(a.events, created)
	sortByStartTime(a.events)
	a.mu.Unlock()

	a.notify()
	return created, nil
}

// UpdateEvent delegates a partial update to the owning provider, then applies
// the same change to the in-memory collection.
func (a *Aggregator) UpdateEvent(ctx context.Context, id string, patch event.Patch) error {
	a.mu.RLock()
	idx := a.indexOf(id)
	var current event.TemporalEvent
	if idx >= 0 {
		current = a.events[idx]
	}
	a.mu.RUnlock()

	if idx < 0 {
		return fmt.Errorf("update %q: %w", id, event.ErrEventNotFound)
	}

	updated := patch.Apply(current)
	if err := event.Validate(updated); err != nil {
		return err
	}

	p, err := a.providerFor(current.Type)
	if err != nil {
		return err
	}
	if err := p.UpdateEvent(ctx, id, patch); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	a.mu.Lock()
	if idx = a.indexOf(id); idx >= 0 {
		a.events[idx] = updated
		sortByStartTime(a.events)
	}
	a.mu.Unlock()

	a.notify()
	return nil
}

// DeleteEvent delegates deletion to the owning provider, then removes the
// event from the collection.
func (a *Aggregator) DeleteEvent(ctx context.Context, id string) error {
	a.mu.RLock()
	idx := a.indexOf(id)
	var current event.TemporalEvent
	if idx >= 0 {
		current = a.events[idx]
	}
	a.mu.RUnlock()

	if idx < 0 {
		return fmt.Errorf("delete %q: %w", id, event.ErrEventNotFound)
	}

	p, err := a.providerFor(current.Type)
	if err != nil {
		return err
	}
	if err := p.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	a.mu.Lock()
	if idx = a.indexOf(id); idx >= 0 {
		a.events = append(a.events[:idx], a.events[idx+1:]...)
	}
	a.mu.Unlock()

	a.notify()
	return nil
}

// Subscribe registers a callback invoked with the full collection after
// every mutation. The returned function removes the subscription.
func (a *Aggregator) Subscribe(callback func([]event.TemporalEvent)) func() {
	a.mu.Lock()
	id := a.nextSubId
	a.nextSubId++
	a.subscribers[id] = callback
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subscribers, id)
		a.mu.Unlock()
	}
}

// Events returns a copy of the current sorted collection.
func (a *Aggregator) Events() []event.TemporalEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]event.TemporalEvent, len(a.events))
	copy(out, a.events)
	return out
}

// EventsInRange returns events overlapping [start, end).
func (a *Aggregator) EventsInRange(start, end float64) []event.TemporalEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []event.TemporalEvent
	for _, e := range a.events {
		if e.EffectiveEnd() <= start || e.StartTime >= end {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EventsAtTime returns events present at time t. Point events occupy a one
// second window.
func (a *Aggregator) EventsAtTime(t float64) []event.TemporalEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []event.TemporalEvent
	for _, e := range a.events {
		if e.StartTime <= t && t <= e.EffectiveEnd() {
			out = append(out, e)
		}
	}
	return out
}

// EventsByType returns the events of one type, in timeline order.
func (a *Aggregator) EventsByType(eventType string) []event.TemporalEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []event.TemporalEvent
	for _, e := range a.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// EventsByCategory returns the events whose metadata category matches, in
// timeline order.
func (a *Aggregator) EventsByCategory(category string) []event.TemporalEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []event.TemporalEvent
	for _, e := range a.events {
		if e.Metadata.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// providerFor resolves the provider owning an event type.
func (a *Aggregator) providerFor(eventType string) (provider.Provider, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	p, ok := a.providers[eventType]
	if !ok {
		return nil, fmt.Errorf("type %q: %w", eventType, event.ErrProviderMissing)
	}
	return p, nil
}

// indexOf returns the position of the event with the given id, or -1.
// Callers must hold the lock.
func (a *Aggregator) indexOf(id string) int {
	for i, e := range a.events {
		if e.Id == id {
			return i
		}
	}
	return -1
}

// notify invokes every subscriber with a copy of the current collection.
func (a *Aggregator) notify() {
	a.mu.RLock()
	callbacks := make([]func([]event.TemporalEvent), 0, len(a.subscribers))
	for _, cb := range a.subscribers {
		callbacks = append(callbacks, cb)
	}
	a.mu.RUnlock()

	snapshot := a.Events()
	for _, cb := range callbacks {
		cb(snapshot)
	}
}

// sortByStartTime sorts events ascending by start time, keeping arrival
// order for ties.
func sortByStartTime(events []event.TemporalEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime < events[j].StartTime
	})
}
