package matching

import (
	"time"

	"propcare/models"
	"propcare/services/interval"
)

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

// PointerEvent is a press, drag, release or cancel at an instant on the grid.
type PointerEvent struct {
	Kind PointerKind
	At   time.Time
}

// GestureState is the value threaded through Reduce while the contractor
// drags across the day grid. Selection is set once the drag is released.
type GestureState struct {
	GridMinutes int
	Location    *time.Location

	Dragging  bool
	Anchor    time.Time
	Current   time.Time
	Selection *models.SelectedInterval
}

// NewGesture returns an idle gesture bound to a grid.
func NewGesture(gridMinutes int, loc *time.Location) GestureState {
	if loc == nil {
		loc = time.UTC
	}
	return GestureState{GridMinutes: gridMinutes, Location: loc}
}

// Reduce folds one pointer event into the gesture. It never mutates s.
func Reduce(s GestureState, ev PointerEvent) GestureState {
	switch ev.Kind {
	case PointerDown:
		at := s.snap(ev.At)
		next := NewGesture(s.GridMinutes, s.Location)
		next.Dragging = true
		next.Anchor = at
		next.Current = at
		return next

	case PointerMove:
		if !s.Dragging {
			return s
		}
		s.Current = s.snap(ev.At)
		return s

	case PointerUp:
		if !s.Dragging {
			return s
		}
		s.Current = s.snap(ev.At)
		s.Dragging = false
		sel := models.SelectedInterval{Interval: s.span()}
		s.Selection = &sel
		return s

	case PointerCancel:
		return NewGesture(s.GridMinutes, s.Location)
	}
	return s
}

func (s GestureState) snap(t time.Time) time.Time {
	return interval.SnapToGrid(t, s.GridMinutes, s.Location)
}

// span orders anchor and current; a click without drag selects one cell.
func (s GestureState) span() models.TimeInterval {
	start, end := s.Anchor, s.Current
	if end.Before(start) {
		start, end = end, start
	}
	if !end.After(start) {
		grid := s.GridMinutes
		if grid <= 0 {
			grid = 60
		}
		end = start.Add(time.Duration(grid) * time.Minute)
	}
	return models.TimeInterval{Start: start, End: end}
}
