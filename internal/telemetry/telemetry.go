// Package telemetry records a JSONL trace of decompiler pipeline stages.
// Every section load, parse, tree build, rendered and written file, and
// failure becomes one structured JSON event, so a run can be audited and
// compared with a later one.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the pipeline stage that produced an event.
const (
	KindSectionLoaded = "section_loaded"
	KindSectionParsed = "section_parsed"
	KindScreenBuilt   = "screen_built"
	KindFileRendered  = "file_rendered"
	KindFileWritten   = "file_written"
	KindRunFailed     = "run_failed"
)

// Event is a single trace record: a timestamp, a kind tag, optional
// section and screen names, and arbitrary structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Section   string    `json:"section,omitempty"`
	Screen    string    `json:"screen,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes events to a JSONL file. It is safe for concurrent use.
// A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
	now  func() time.Time
}

// NewEmitter creates an Emitter appending to the file at path, creating it
// if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
		now:  time.Now,
	}, nil
}

// Emit writes a single event. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record stamps and emits an event for a stage.
func (e *Emitter) Record(kind, section, screen string, data any) error {
	if e == nil {
		return nil
	}
	return e.Emit(Event{Timestamp: e.now(), Kind: kind, Section: section, Screen: screen, Data: data})
}

// Close closes the underlying file. Calling Close on a nil Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
