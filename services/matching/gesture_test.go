package matching

import (
	"testing"
	"time"
)

func TestReduce_DragProducesSnappedSelection(t *testing.T) {
	ny := newYork(t)
	at := func(h, m int) time.Time { return time.Date(2025, time.March, 4, h, m, 0, 0, ny) }

	s := NewGesture(30, ny)
	s = Reduce(s, PointerEvent{Kind: PointerDown, At: at(14, 7)})
	if !s.Dragging || !s.Anchor.Equal(at(14, 0)) {
		t.Fatalf("after down: %+v", s)
	}
	s = Reduce(s, PointerEvent{Kind: PointerMove, At: at(15, 10)})
	s = Reduce(s, PointerEvent{Kind: PointerUp, At: at(15, 50)})

	if s.Dragging {
		t.Errorf("still dragging after release")
	}
	if s.Selection == nil {
		t.Fatalf("no selection after release")
	}
	got := s.Selection.Interval
	if !got.Start.Equal(at(14, 0)) || !got.End.Equal(at(16, 0)) {
		t.Errorf("selection = %s-%s, want 14:00-16:00", got.Start.Format("15:04"), got.End.Format("15:04"))
	}
}

func TestReduce_BackwardsDragIsOrdered(t *testing.T) {
	ny := newYork(t)
	at := func(h, m int) time.Time { return time.Date(2025, time.March, 4, h, m, 0, 0, ny) }

	s := NewGesture(60, ny)
	s = Reduce(s, PointerEvent{Kind: PointerDown, At: at(16, 0)})
	s = Reduce(s, PointerEvent{Kind: PointerUp, At: at(14, 0)})
	if s.Selection == nil || !s.Selection.Interval.Start.Equal(at(14, 0)) || !s.Selection.Interval.End.Equal(at(16, 0)) {
		t.Errorf("unexpected selection %+v", s.Selection)
	}
}

func TestReduce_ClickSelectsOneCell(t *testing.T) {
	ny := newYork(t)
	at := func(h, m int) time.Time { return time.Date(2025, time.March, 4, h, m, 0, 0, ny) }

	s := NewGesture(30, ny)
	s = Reduce(s, PointerEvent{Kind: PointerDown, At: at(9, 0)})
	s = Reduce(s, PointerEvent{Kind: PointerUp, At: at(9, 5)})
	if s.Selection == nil || !s.Selection.Interval.End.Equal(at(9, 30)) {
		t.Errorf("unexpected selection %+v", s.Selection)
	}
}

func TestReduce_IgnoresStrayEventsAndCancels(t *testing.T) {
	ny := newYork(t)
	at := func(h, m int) time.Time { return time.Date(2025, time.March, 4, h, m, 0, 0, ny) }

	idle := NewGesture(30, ny)
	if got := Reduce(idle, PointerEvent{Kind: PointerMove, At: at(9, 0)}); got.Dragging || got.Selection != nil {
		t.Errorf("move while idle changed state: %+v", got)
	}
	if got := Reduce(idle, PointerEvent{Kind: PointerUp, At: at(9, 0)}); got.Selection != nil {
		t.Errorf("release while idle produced a selection")
	}

	s := Reduce(idle, PointerEvent{Kind: PointerDown, At: at(9, 0)})
	s = Reduce(s, PointerEvent{Kind: PointerCancel})
	if s.Dragging || s.Selection != nil || s.GridMinutes != 30 {
		t.Errorf("cancel did not reset: %+v", s)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	ny := newYork(t)
	at := time.Date(2025, time.March, 4, 9, 0, 0, 0, ny)

	start := Reduce(NewGesture(30, ny), PointerEvent{Kind: PointerDown, At: at})
	_ = Reduce(start, PointerEvent{Kind: PointerUp, At: at.Add(time.Hour)})
	if !start.Dragging || start.Selection != nil {
		t.Errorf("input state was mutated: %+v", start)
	}
}
