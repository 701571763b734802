package provider

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/voxmetric/call-timeline/internal/core/event"
	"github.com/voxmetric/call-timeline/internal/util"
)

// FileProvider sources events from a JSONL file, one event per line. The
// file is the durable owner: mutations are written back before they are
// reported as applied.
type FileProvider struct {
	mu        sync.Mutex
	path      string
	eventType string
	config    TimelineConfig
	nextId    int
}

// NewFileProvider creates a provider over the given JSONL file for one
// event type. The file does not need to exist yet.
func NewFileProvider(path, eventType string, config TimelineConfig) *FileProvider {
	return &FileProvider{
		path:      path,
		eventType: eventType,
		config:    config,
	}
}

func (p *FileProvider) Type() string {
	return p.eventType
}

func (p *FileProvider) TimelineConfig() TimelineConfig {
	return p.config
}

// FetchEvents reads and decodes every line of the backing file. Lines that
// fail to decode or validate are skipped with a debug log, never fatal.
func (p *FileProvider) FetchEvents(ctx context.Context) ([]event.TemporalEvent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readAll()
}

func (p *FileProvider) readAll() ([]event.TemporalEvent, error) {
	file, err := os.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []event.TemporalEvent
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e event.TemporalEvent
		if err := sonic.Unmarshal(scanner.Bytes(), &e); err != nil {
			util.LogDebugf("Skip invalid JSON line %s:%d - %v", p.path, lineCount, err)
			continue
		}
		if err := event.Validate(e); err != nil {
			util.LogDebugf("Skip invalid event %s:%d - %v", p.path, lineCount, err)
			continue
		}
		if e.Type == "" {
			e.Type = p.eventType
		}
		events = append(events, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (p *FileProvider) writeAll(events []event.TemporalEvent) error {
	file, err := os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, e := range events {
		data, err := sonic.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := writer.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func (p *FileProvider) CreateEvent(ctx context.Context, e event.TemporalEvent) (event.TemporalEvent, error) {
	if err := event.Validate(e); err != nil {
		return event.TemporalEvent{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if e.Id == "" {
		existing, err := p.readAll()
		if err != nil {
			return event.TemporalEvent{}, err
		}
		used := make(map[string]bool, len(existing))
		for _, ev := range existing {
			used[ev.Id] = true
		}
		// Ids already present in the file must never be minted again
		for {
			p.nextId++
			e.Id = fmt.Sprintf("%s-%d", p.eventType, p.nextId)
			if !used[e.Id] {
				break
			}
		}
	}
	e.Type = p.eventType

	data, err := sonic.Marshal(e)
	if err != nil {
		return event.TemporalEvent{}, err
	}

	file, err := os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return event.TemporalEvent{}, err
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return event.TemporalEvent{}, err
	}
	return e, nil
}

func (p *FileProvider) UpdateEvent(ctx context.Context, id string, patch event.Patch) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	events, err := p.readAll()
	if err != nil {
		return err
	}

	found := false
	for i, e := range events {
		if e.Id == id {
			updated := patch.Apply(e)
			if err := event.Validate(updated); err != nil {
				return err
			}
			events[i] = updated
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("file provider %s: %w", p.path, event.ErrEventNotFound)
	}
	return p.writeAll(events)
}

func (p *FileProvider) DeleteEvent(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	events, err := p.readAll()
	if err != nil {
		return err
	}

	kept := events[:0]
	found := false
	for _, e := range events {
		if e.Id == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("file provider %s: %w", p.path, event.ErrEventNotFound)
	}
	return p.writeAll(kept)
}
