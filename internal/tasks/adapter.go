package tasks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultSlotKey is the key the task list is stored under.
const DefaultSlotKey = "todos"

// Slot is a named string store that survives restarts.
type Slot interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Adapter reads and writes the JSON encoded task list in a single slot key.
type Adapter struct {
	slot Slot
	key  string
	log  *slog.Logger
}

func NewAdapter(slot Slot, key string, log *slog.Logger) *Adapter {
	if key == "" {
		key = DefaultSlotKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{slot: slot, key: key, log: log}
}

func (a *Adapter) Key() string { return a.key }

// Load returns the persisted list. A missing key, a read error or an
// undecodable value all yield an empty list.
func (a *Adapter) Load() []Task {
	raw, ok, err := a.slot.Get(a.key)
	if err != nil {
		a.log.Warn("reading task slot", "key", a.key, "error", err)
		return []Task{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Task{}
	}
	var decoded []Task
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		a.log.Warn("decoding task slot", "key", a.key, "error", err)
		return []Task{}
	}
	tasks := sanitize(decoded)
	if dropped := len(decoded) - len(tasks); dropped > 0 {
		a.log.Warn("dropped invalid task records", "key", a.key, "dropped", dropped)
	}
	return tasks
}

// Save replaces the slot value with the full list.
func (a *Adapter) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := a.slot.Set(a.key, string(data)); err != nil {
		return fmt.Errorf("writing slot %q: %w", a.key, err)
	}
	return nil
}

// sanitize drops records without an id or text and later duplicates of an
// id already seen.
func sanitize(in []Task) []Task {
	out := make([]Task, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		if t.ID == "" || strings.TrimSpace(t.Text) == "" {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// MemorySlot is a Slot that lives only as long as the process.
type MemorySlot struct {
	values map[string]string
	// Err, when set, is returned by every Set call.
	Err error
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: map[string]string{}}
}

func (m *MemorySlot) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemorySlot) Set(key, value string) error {
	if m.Err != nil {
		return m.Err
	}
	m.values[key] = value
	return nil
}
