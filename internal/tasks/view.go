package tasks

import "math"

// Stats are the aggregate counters shown next to the list.
type Stats struct {
	Total     int
	Active    int
	Completed int
	Percent   int
}

// ComputeView returns the tasks matching filter in list order. The result
// never aliases the input.
func ComputeView(tasks []Task, filter Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// ComputeStats counts tasks. Percent is the rounded completed share, 0 for
// an empty list.
func ComputeStats(tasks []Task) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	if st.Total > 0 {
		st.Percent = int(math.Round(100 * float64(st.Completed) / float64(st.Total)))
	}
	return st
}
