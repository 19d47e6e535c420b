// Package view derives the displayed subset and order of tasks from the
// store contents plus the active filter, search text and sort order. It
// is a pure projection: no hidden state, fully re-derivable.
package view

import (
	"sort"
	"strings"

	"github.com/Makepad-fr/taskpad/internal/model"
)

// Filter selects which tasks are shown.
type Filter int

const (
	FilterAll Filter = iota
	FilterPending
	FilterCompleted
	FilterByPriority
)

// Query bundles the view inputs. Priority only matters when Filter is
// FilterByPriority. Empty Search matches everything.
type Query struct {
	Filter   Filter
	Priority model.Priority
	Search   string
}

// ParseFilter converts user input ("all", "pending", "completed",
// "high", "medium", "low") into a Query filter.
func ParseFilter(s string) (Filter, model.Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, "", true
	case "pending", "open":
		return FilterPending, "", true
	case "completed", "done":
		return FilterCompleted, "", true
	}
	p, err := model.ParsePriority(s)
	if err != nil {
		return FilterAll, "", false
	}
	return FilterByPriority, p, true
}

// Visible returns the tasks matching q, ordered for display. Deleted
// tasks never appear, whatever the filter. The sort is stable over the
// incoming (insertion) order with keys, in precedence order: pending
// before completed, priority high to low, due date ascending with
// undated tasks last, creation time ascending.
func Visible(tasks []model.Task, q Query) []model.Task {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		switch q.Filter {
		case FilterPending:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterByPriority:
			if t.Priority != q.Priority {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if ar, br := a.Priority.Rank(), b.Priority.Rank(); ar != br {
			return ar < br
		}
		if !a.Due.Equal(b.Due) {
			// Undated tasks order after dated ones.
			if a.Due.IsZero() {
				return false
			}
			if b.Due.IsZero() {
				return true
			}
			return a.Due.Before(b.Due)
		}
		return a.Created.Before(b.Created)
	})
	return out
}

// Stats summarizes the non-deleted tasks for the status line.
type Stats struct {
	Total     int
	Pending   int
	Completed int
}

// Count tallies totals over the non-deleted tasks.
func Count(tasks []model.Task) Stats {
	var st Stats
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		st.Total++
		if t.Completed {
			st.Completed++
		} else {
			st.Pending++
		}
	}
	return st
}
