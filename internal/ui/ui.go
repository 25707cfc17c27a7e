package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tally/internal/config"
	"tally/internal/tasks"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

// commitDeleteMsg finishes a delete once the row's exit animation is over.
type commitDeleteMsg struct{ id string }

// commitClearMsg finishes clear-completed once the rows have faded out.
type commitClearMsg struct{}

type Model struct {
	ctl    *tasks.Controller
	cfg    config.Config
	log    *slog.Logger
	now    func() time.Time
	view   []tasks.Task
	cursor int
	mode   mode
	input  textinput.Model
	status string
	failed bool

	// removing holds ids whose rows are fading out and waiting for commit.
	removing    map[string]bool
	deleteDelay time.Duration
	clearDelay  time.Duration
}

func NewModel(ctl *tasks.Controller, cfg config.Config, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 0
	ti.Width = 40

	del, clear := cfg.Delays()
	m := Model{
		ctl:         ctl,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
		input:       ti,
		mode:        modeList,
		status:      fmt.Sprintf("Press '%s' to add, space to toggle, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Delete),
		removing:    map[string]bool{},
		deleteDelay: del,
		clearDelay:  clear,
	}
	m.refresh()
	return m
}

func Run(ctl *tasks.Controller, cfg config.Config, log *slog.Logger) error {
	program := tea.NewProgram(NewModel(ctl, cfg, log))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeAdd {
			return m.updateAddMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case commitDeleteMsg:
		return m.commitDelete(msg.id), nil
	case commitClearMsg:
		return m.commitClear(), nil
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-10, 10)
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.setStatus("Cancelled")
		return m, nil
	case m.cfg.Keys.Confirm:
		task, ok, err := m.ctl.AddTask(m.input.Value())
		if !ok {
			m.setStatus("Task text cannot be empty")
			return m, nil
		}
		m.refresh()
		m.cursor = 0
		m.input.SetValue("")
		if err != nil {
			m.setError("save failed", err)
			return m, nil
		}
		m.log.Debug("task added", "id", task.ID)
		m.setStatus(fmt.Sprintf("Added %q", task.Text))
		return m, m.input.Focus()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.view))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.view))
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.setStatus("Add mode: type a task and press Enter, Esc to finish")
		return m, m.input.Focus()
	case m.cfg.Keys.Toggle, "x":
		return m.toggleSelected(), nil
	case m.cfg.Keys.Delete:
		return m.requestDelete()
	case m.cfg.Keys.ClearCompleted:
		return m.requestClear()
	case m.cfg.Keys.FilterAll:
		return m.setFilter(tasks.FilterAll), nil
	case m.cfg.Keys.FilterActive:
		return m.setFilter(tasks.FilterActive), nil
	case m.cfg.Keys.FilterCompleted:
		return m.setFilter(tasks.FilterCompleted), nil
	case m.cfg.Keys.NextFilter:
		return m.setFilter(m.ctl.Filter().Next()), nil
	}
	return m, nil
}

func (m Model) toggleSelected() Model {
	task, ok := m.selected()
	if !ok || m.removing[task.ID] {
		return m
	}
	if _, err := m.ctl.ToggleTask(task.ID); err != nil {
		m.refresh()
		m.setError("save failed", err)
		return m
	}
	m.refresh()
	if task.Completed {
		m.setStatus(fmt.Sprintf("Reopened %q", task.Text))
	} else {
		m.setStatus(fmt.Sprintf("Completed %q", task.Text))
	}
	return m
}

// requestDelete starts the exit animation of the selected row. The store
// is only touched when the commit message arrives.
func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	task, ok := m.selected()
	if !ok || m.removing[task.ID] {
		return m, nil
	}
	m.removing[task.ID] = true
	m.setStatus(fmt.Sprintf("Deleting %q", task.Text))
	id := task.ID
	return m, tea.Tick(m.deleteDelay, func(time.Time) tea.Msg {
		return commitDeleteMsg{id: id}
	})
}

func (m Model) commitDelete(id string) Model {
	delete(m.removing, id)
	ok, err := m.ctl.DeleteTask(id)
	m.refresh()
	if err != nil {
		m.setError("save failed", err)
		return m
	}
	if ok {
		m.log.Debug("task deleted", "id", id)
		m.setStatus("Deleted task")
	}
	return m
}

func (m Model) requestClear() (tea.Model, tea.Cmd) {
	if !m.ctl.Store().HasCompleted() {
		return m, nil
	}
	n := 0
	for _, t := range m.ctl.Store().Tasks() {
		if t.Completed {
			m.removing[t.ID] = true
			n++
		}
	}
	m.setStatus(fmt.Sprintf("Clearing %d completed", n))
	return m, tea.Tick(m.clearDelay, func(time.Time) tea.Msg {
		return commitClearMsg{}
	})
}

func (m Model) commitClear() Model {
	n, err := m.ctl.ClearCompleted()
	for id := range m.removing {
		if _, ok := m.ctl.Store().Get(id); !ok {
			delete(m.removing, id)
		}
	}
	m.refresh()
	if err != nil {
		m.setError("save failed", err)
		return m
	}
	if n > 0 {
		m.log.Debug("cleared completed tasks", "count", n)
		m.setStatus(fmt.Sprintf("Cleared %d completed", n))
	}
	return m
}

func (m Model) setFilter(f tasks.Filter) Model {
	if f == m.ctl.Filter() {
		return m
	}
	m.ctl.SetFilter(f)
	m.cursor = 0
	m.refresh()
	m.setStatus("Showing " + f.String())
	return m
}

func (m Model) selected() (tasks.Task, bool) {
	if len(m.view) == 0 {
		return tasks.Task{}, false
	}
	return m.view[clampCursor(m.cursor, len(m.view))], true
}

// refresh re-derives the visible rows from the store and the filter.
func (m *Model) refresh() {
	m.view = m.ctl.CurrentView()
	m.cursor = clampCursor(m.cursor, len(m.view))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(what string, err error) {
	m.log.Error(what, "error", err)
	m.status = fmt.Sprintf("%s: %v", what, err)
	m.failed = true
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
