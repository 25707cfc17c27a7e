package tasks

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory ordered task list, newest first. Every mutation
// that changes the list is written through the adapter and reported to the
// change hook. Store is not safe for concurrent use.
type Store struct {
	tasks    []Task
	adapter  *Adapter
	onChange func()

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the id generator.
func WithIDs(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// OnChange registers fn to be called after each persisted mutation.
func OnChange(fn func()) Option {
	return func(s *Store) { s.onChange = fn }
}

// NewStore loads the persisted list through adapter.
func NewStore(adapter *Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		now:     time.Now,
		newID:   newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = adapter.Load()
	return s
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Tasks returns a snapshot of the list.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int { return len(s.tasks) }

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Resolve finds the single task whose id starts with prefix.
func (s *Store) Resolve(prefix string) (Task, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return Task{}, ErrNotFound
	}
	var (
		found Task
		n     int
	)
	for _, t := range s.tasks {
		if t.ID == prefix {
			return t, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			found = t
			n++
		}
	}
	switch n {
	case 0:
		return Task{}, ErrNotFound
	case 1:
		return found, nil
	}
	return Task{}, ErrAmbiguousID
}

// Add prepends a new task. Blank text is ignored and ok is false.
func (s *Store) Add(text string) (task Task, ok bool, err error) {
	text = strings.TrimSpace(strings.ToValidUTF8(text, "\uFFFD"))
	if text == "" {
		return Task{}, false, nil
	}
	task = Task{
		ID:        s.uniqueID(),
		Text:      text,
		CreatedAt: time.UnixMilli(s.now().UnixMilli()),
	}
	s.tasks = append([]Task{task}, s.tasks...)
	return task, true, s.commit()
}

// Toggle flips the completion flag of id. ok is false if id is unknown.
func (s *Store) Toggle(id string) (ok bool, err error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return true, s.commit()
}

// Delete removes id. ok is false if id is unknown.
func (s *Store) Delete(id string) (ok bool, err error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return true, s.commit()
}

// ClearCompleted removes every completed task and returns how many went.
// Nothing is written when no task is completed.
func (s *Store) ClearCompleted() (int, error) {
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept
	return removed, s.commit()
}

// HasCompleted reports whether any task is completed.
func (s *Store) HasCompleted() bool {
	for _, t := range s.tasks {
		if t.Completed {
			return true
		}
	}
	return false
}

func (s *Store) commit() error {
	err := s.adapter.Save(s.tasks)
	if s.onChange != nil {
		s.onChange()
	}
	return err
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
	}
}
