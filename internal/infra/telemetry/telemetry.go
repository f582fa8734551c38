package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tasuku43/opencommit/internal/infra/debuglog"
)

// Sink receives usage events. Implementations never report failures to the caller.
type Sink interface {
	AddEvent(name string, fields map[string]string)
}

type Event struct {
	ID     string            `json:"id"`
	Time   time.Time         `json:"ts"`
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields,omitempty"`
}

type nopSink struct{}

func (nopSink) AddEvent(string, map[string]string) {}

func Nop() Sink {
	return nopSink{}
}

// FileSink appends one JSON object per event to a file.
type FileSink struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileSink(path string) (*FileSink, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("telemetry file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create telemetry dir: %w", err)
	}
	return &FileSink{path: path, now: time.Now}, nil
}

func (s *FileSink) AddEvent(name string, fields map[string]string) {
	trace := debuglog.NewTrace("telemetry")
	debuglog.LogEvent(trace, name, fields)
	event := Event{
		ID:     uuid.New().String(),
		Time:   s.now().UTC(),
		Name:   name,
		Fields: copyFields(fields),
	}
	if err := s.write(event); err != nil {
		debuglog.Logf(trace, "telemetry write failed: %v", err)
	}
}

func (s *FileSink) write(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	if _, err := file.Write(append(data, '\n')); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func copyFields(fields map[string]string) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
