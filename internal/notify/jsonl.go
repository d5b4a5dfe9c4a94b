package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONLSink appends events to a file, one JSON object per line.
//
// The file is opened lazily on first emit and created if missing. Lines
// are self-contained, so external indexers can tail the file.
type JSONLSink struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// NewJSONLSink creates a sink writing to the given path.
func NewJSONLSink(path string) *JSONLSink {
	return &JSONLSink{path: path}
}

// Emit appends one JSON line for the event.
func (s *JSONLSink) Emit(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open notification log: %w", err)
		}
		s.file = f
	}

	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	line = append(line, '\n')

	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}

// Close closes the underlying file if it was opened.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
