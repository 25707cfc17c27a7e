package ui

import (
	"fmt"
	"strings"

	"tally/internal/config"
	"tally/internal/tasks"
)

const barWidth = 20

func (m Model) View() string {
	stats := m.ctl.CurrentStats()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tally"))
	b.WriteString("  ")
	b.WriteString(dateStyle.Render(m.now().Format(m.cfg.DateFormat)))
	b.WriteString("\n")
	b.WriteString(renderStats(stats))
	b.WriteString("\n\n")
	b.WriteString(renderTabs(m.ctl.Filter()))
	b.WriteString("\n\n")

	if len(m.view) == 0 {
		b.WriteString(mutedStyle.Render(emptyMessage(m.ctl.Filter(), m.cfg.Keys)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	if stats.Total > 0 {
		b.WriteString("\n")
		b.WriteString(renderFooter(stats, m.cfg.Keys))
		b.WriteString("\n")
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n---\n")
	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, t := range m.view {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = cursorStyle.Render(">")
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		text := t.Text
		switch {
		case m.removing[t.ID]:
			text = removingStyle.Render(text)
		case t.Completed:
			text = doneStyle.Render(text)
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, text))
	}
	return b.String()
}

func renderStats(st tasks.Stats) string {
	return fmt.Sprintf("%s total · %s active · %s done   %s %d%%",
		counterStyle.Render(fmt.Sprint(st.Total)),
		counterStyle.Render(fmt.Sprint(st.Active)),
		counterStyle.Render(fmt.Sprint(st.Completed)),
		renderBar(st.Percent),
		st.Percent)
}

func renderBar(percent int) string {
	filled := (percent*barWidth + 50) / 100
	filled = clampCursor(filled, barWidth+1)
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func renderTabs(current tasks.Filter) string {
	active := activeTabs(current)
	tabs := make([]string, 0, len(tasks.Filters))
	for i, f := range tasks.Filters {
		label := strings.ToUpper(f.String()[:1]) + f.String()[1:]
		if active[i] {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// activeTabs reports, per entry of tasks.Filters, whether its tab is the
// active one. Exactly one entry is true.
func activeTabs(current tasks.Filter) []bool {
	active := make([]bool, len(tasks.Filters))
	for i, f := range tasks.Filters {
		active[i] = f == current
	}
	return active
}

func renderFooter(st tasks.Stats, k config.Keymap) string {
	left := itemsLeft(st.Active)
	if st.Completed == 0 {
		return mutedStyle.Render(left)
	}
	return mutedStyle.Render(fmt.Sprintf("%s · %s clear completed", left, k.ClearCompleted))
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 task left"
	}
	return fmt.Sprintf("%d tasks left", n)
}

func emptyMessage(f tasks.Filter, k config.Keymap) string {
	switch f {
	case tasks.FilterActive:
		return "Nothing left to do."
	case tasks.FilterCompleted:
		return "Nothing completed yet."
	}
	return fmt.Sprintf("No tasks yet. Press '%s' to add one.", k.Add)
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • space toggle • %s delete • %s clear done • %s/%s/%s/%s filter • %s quit",
		k.Up, k.Down, k.Add, k.Delete, k.ClearCompleted, k.FilterAll, k.FilterActive, k.FilterCompleted, k.NextFilter, k.Quit)
}
