// Package tasks holds the task list core: the record type, the store that
// owns the ordered list, the persistence adapter and the pure view and
// stats derivations used by every front end.
package tasks

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrAmbiguousID   = errors.New("id prefix matches more than one task")
	ErrInvalidFilter = errors.New("invalid filter")
)

// Task is one to-do item. The store is its only owner; everything else
// works on copies.
type Task struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
}

// wireTask is the persisted layout. createdAt is epoch milliseconds.
type wireTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTask{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UnixMilli(),
	})
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Task{
		ID:        w.ID,
		Text:      w.Text,
		Completed: w.Completed,
		CreatedAt: time.UnixMilli(w.CreatedAt),
	}
	return nil
}
