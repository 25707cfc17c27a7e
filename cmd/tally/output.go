package main

import (
	"fmt"
	"io"
	"strings"

	"tally/internal/tasks"
)

// formatTask writes "{ID}  [x] {TEXT}".
func formatTask(w io.Writer, t tasks.Task) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%s  %s %s\n", t.ID, box, normalizeText(t.Text))
}

func formatStats(w io.Writer, st tasks.Stats) {
	fmt.Fprintf(w, "%d total, %d active, %d completed (%d%%)\n", st.Total, st.Active, st.Completed, st.Percent)
}

// normalizeText keeps one task on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
