package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Event struct {
	At      string `json:"at"`
	Actor   string `json:"actor,omitempty"`
	Action  string `json:"action"`
	Entity  string `json:"entity,omitempty"`
	Outcome string `json:"outcome"`
	Note    string `json:"note,omitempty"`
}

type Logger struct {
	path    string
	nowFunc func() time.Time
	mu      sync.Mutex
}

// NewLogger returns a logger appending to path. An empty path disables
// auditing; Record then becomes a no-op.
func NewLogger(path string) *Logger {
	return &Logger{path: path, nowFunc: time.Now}
}

func (l *Logger) Record(actor, action, entity, outcome, note string) error {
	if l == nil || l.path == "" {
		return nil
	}
	e := Event{
		At:      l.nowFunc().UTC().Format(time.RFC3339),
		Actor:   actor,
		Action:  action,
		Entity:  entity,
		Outcome: outcome,
		Note:    note,
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("mkdir audit log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write audit log entry: %w", err)
	}
	return nil
}
