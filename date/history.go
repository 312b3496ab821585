package date

import (
	"iter"
	"slices"
)

// point is a value on a day.
type point[T any] struct {
	on Date
	v  T
}

// History is a series of values with at most one value per day, kept in chronological order.
//
// The zero value is an empty history ready to use.
type History[T any] struct {
	points []point[T]
}

func (h *History[T]) Len() int { return len(h.points) }

// index returns the position of day in the series, or the position it would be inserted at.
func (h *History[T]) index(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.points, day, func(p point[T], day Date) int {
		return p.on.Compare(day)
	})
}

// Append sets the value of day and returns h. A value already on that day is replaced:
// providers may send a corrected close.
func (h *History[T]) Append(day Date, v T) *History[T] {
	i, found := h.index(day)
	if found {
		h.points[i].v = v
	} else {
		h.points = slices.Insert(h.points, i, point[T]{day, v})
	}
	return h
}

// Get returns the value on day, if any.
func (h *History[T]) Get(day Date) (v T, ok bool) {
	if i, found := h.index(day); found {
		return h.points[i].v, true
	}
	return v, false
}

// Latest returns the last day of the series and its value, zero values when it is empty.
func (h *History[T]) Latest() (day Date, v T) {
	if len(h.points) == 0 {
		return day, v
	}
	last := h.points[len(h.points)-1]
	return last.on, last.v
}

// ValueOnOrAfter returns the first day of the series that is not before day, and its value.
// ok is false when the whole series is before day.
func (h *History[T]) ValueOnOrAfter(day Date) (on Date, v T, ok bool) {
	i, _ := h.index(day)
	if i == len(h.points) {
		return on, v, false
	}
	return h.points[i].on, h.points[i].v, true
}

// Since returns a copy of the series from day on.
func (h *History[T]) Since(day Date) *History[T] {
	i, _ := h.index(day)
	return &History[T]{points: slices.Clone(h.points[i:])}
}

// Values iterates over the series in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for _, p := range h.points {
			if !yield(p.on, p.v) {
				return
			}
		}
	}
}

// Iterate iterates over the union of the days of histories, in chronological order.
func Iterate[T any](histories ...*History[T]) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		next := make([]int, len(histories)) // next unread point of each history.
		for {
			var first Date
			for i, h := range histories {
				if next[i] < h.Len() {
					if on := h.points[next[i]].on; first.IsZero() || on.Before(first) {
						first = on
					}
				}
			}
			if first.IsZero() {
				return
			}
			for i, h := range histories {
				if next[i] < h.Len() && h.points[next[i]].on == first {
					next[i]++
				}
			}
			if !yield(first) {
				return
			}
		}
	}
}
