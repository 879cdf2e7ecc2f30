// Package insight derives the read-only views the dashboard and CLI show:
// sorted lists, groupings and progress counters.
package insight

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/h0rv/dread/internal/domain"
)

// SortByOrder returns rows sorted by order index. Ties keep their input order.
func SortByOrder[T domain.OrderedRow[T]](rows []T) []T {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b T) int { return cmp.Compare(a.Order(), b.Order()) })
	return out
}

// SortBySchedule returns activities with a scheduled date first, earliest
// first, followed by undated ones in their input order.
func SortBySchedule(rows []domain.MarketingActivity) []domain.MarketingActivity {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b domain.MarketingActivity) int {
		at, aok := domain.ParseDate(a.ScheduledDate)
		bt, bok := domain.ParseDate(b.ScheduledDate)
		switch {
		case aok && bok:
			return at.Compare(bt)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Filter returns the rows keep accepts, in order.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := []T{}
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Group is one bucket of a GroupBy result.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

// GroupBy buckets rows by key. Groups appear in the order their first row does.
func GroupBy[K comparable, T any](rows []T, key func(T) K) []Group[K, T] {
	var groups []Group[K, T]
	index := map[K]int{}
	for _, r := range rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

// Contains reports whether any of fields contains query, ignoring case.
func Contains(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

type TaskStats struct {
	Total      int
	Todo       int
	InProgress int
	Completed  int
}

func Tasks(rows []domain.Task) TaskStats {
	s := TaskStats{Total: len(rows)}
	for _, t := range rows {
		switch t.Status {
		case domain.TaskTodo:
			s.Todo++
		case domain.TaskInProgress:
			s.InProgress++
		case domain.TaskCompleted:
			s.Completed++
		}
	}
	return s
}

type AssetStats struct {
	Total      int
	Needed     int
	InProgress int
	Completed  int
}

func Assets(rows []domain.Asset) AssetStats {
	s := AssetStats{Total: len(rows)}
	for _, a := range rows {
		switch a.Status {
		case domain.AssetNeeded:
			s.Needed++
		case domain.AssetInProgress:
			s.InProgress++
		case domain.AssetCompleted:
			s.Completed++
		}
	}
	return s
}

type HorrorStats struct {
	Total       int
	Implemented int
}

func Horror(rows []domain.HorrorElement) HorrorStats {
	s := HorrorStats{Total: len(rows)}
	for _, h := range rows {
		if h.Implemented {
			s.Implemented++
		}
	}
	return s
}

type MarketingStats struct {
	Total     int
	Completed int
	// Upcoming counts open activities scheduled after now.
	Upcoming int
}

func Marketing(rows []domain.MarketingActivity, now time.Time) MarketingStats {
	s := MarketingStats{Total: len(rows)}
	for _, m := range rows {
		if m.Completed {
			s.Completed++
			continue
		}
		if at, ok := domain.ParseDate(m.ScheduledDate); ok && at.After(now) {
			s.Upcoming++
		}
	}
	return s
}

// SystemStats counts game systems per work status.
type SystemStats struct {
	Total      int
	Planned    int
	InProgress int
	Completed  int
}

func Systems(rows []domain.GameSystem) SystemStats {
	s := SystemStats{Total: len(rows)}
	for _, g := range rows {
		switch g.Status {
		case domain.WorkPlanned:
			s.Planned++
		case domain.WorkInProgress:
			s.InProgress++
		case domain.WorkCompleted:
			s.Completed++
		}
	}
	return s
}

// Percent returns done as a whole percentage of total, 0 when total is 0.
func Percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}
