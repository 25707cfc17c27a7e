package tasks

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSlot struct{ err error }

func (f failingSlot) Get(string) (string, bool, error) { return "", false, f.err }
func (f failingSlot) Set(string, string) error         { return f.err }

func TestLoadMissingKey(t *testing.T) {
	a := NewAdapter(NewMemorySlot(), "", nil)
	got := a.Load()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadBadValues(t *testing.T) {
	for _, raw := range []string{"", "null", "not json", `{"id":"a"}`, `[{"id":1}]`, `[1,2`} {
		t.Run(raw, func(t *testing.T) {
			slot := NewMemorySlot()
			require.NoError(t, slot.Set(DefaultSlotKey, raw))
			assert.Empty(t, NewAdapter(slot, "", nil).Load())
		})
	}
}

func TestLoadReadErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	a := NewAdapter(failingSlot{err: errors.New("disk gone")}, "", log)

	assert.Empty(t, a.Load())
	assert.Contains(t, buf.String(), "disk gone")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	slot := NewMemorySlot()
	a := NewAdapter(slot, "custom", nil)
	tasks := []Task{
		{ID: "b", Text: "B", Completed: true, CreatedAt: time.UnixMilli(1760000000123)},
		{ID: "a", Text: "A \"quoted\" <b>", CreatedAt: time.UnixMilli(1760000000000)},
	}

	require.NoError(t, a.Save(tasks))
	assert.Equal(t, tasks, a.Load())

	_, ok, _ := slot.Get(DefaultSlotKey)
	assert.False(t, ok, "custom key must be used")
}

func TestSaveEmptyWritesArray(t *testing.T) {
	slot := NewMemorySlot()
	require.NoError(t, NewAdapter(slot, "", nil).Save(nil))

	raw, ok, _ := slot.Get(DefaultSlotKey)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestPersistedLayout(t *testing.T) {
	slot := NewMemorySlot()
	a := NewAdapter(slot, "", nil)
	require.NoError(t, a.Save([]Task{{ID: "x1", Text: "Buy milk", CreatedAt: time.UnixMilli(1700000000000)}}))

	raw, _, _ := slot.Get(DefaultSlotKey)
	assert.JSONEq(t, `[{"id":"x1","text":"Buy milk","completed":false,"createdAt":1700000000000}]`, raw)
}

func TestLoadAcceptsBrowserRecords(t *testing.T) {
	slot := NewMemorySlot()
	slot.Set(DefaultSlotKey, `[{"id":"lq3k9x1ab","text":"Einkaufen","completed":true,"createdAt":1700000000000}]`)

	got := NewAdapter(slot, "", nil).Load()
	require.Len(t, got, 1)
	assert.Equal(t, "lq3k9x1ab", got[0].ID)
	assert.True(t, got[0].Completed)
	assert.Equal(t, int64(1700000000000), got[0].CreatedAt.UnixMilli())
}

func TestLoadDropsInvalidRecords(t *testing.T) {
	var buf bytes.Buffer
	slot := NewMemorySlot()
	slot.Set(DefaultSlotKey, `[
		{"id":"a","text":"first"},
		{"id":"a","text":"duplicate"},
		{"id":"","text":"no id"},
		{"id":"b","text":"   "},
		{"id":"c","text":"kept"}
	]`)

	got := NewAdapter(slot, "", slog.New(slog.NewTextHandler(&buf, nil))).Load()
	assert.Equal(t, []string{"a", "c"}, ids(got))
	assert.Equal(t, "first", got[0].Text)
	assert.Contains(t, buf.String(), "dropped=3")
}

func TestSaveErrorIsWrapped(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := NewAdapter(failingSlot{err: cause}, "", nil).Save([]Task{{ID: "a", Text: "A"}})
	assert.ErrorIs(t, err, cause)
}
