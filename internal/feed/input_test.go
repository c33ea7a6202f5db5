package feed

import "testing"

func TestSwipeTracker(t *testing.T) {
	tests := []struct {
		name      string
		startY    float64
		endY      float64
		wantIndex int
	}{
		{"swipe up advances", 500, 400, 1},
		{"swipe down retreats", 400, 500, 0},
		{"below threshold ignored", 500, 460, 0},
		{"exactly threshold ignored", 500, 450, 0},
		{"just over threshold fires", 500, 449, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewController()
			ctrl.SetEntries(entries("1", "2", "3"))

			s := NewSwipeTracker(ctrl)
			s.Start(tt.startY)
			s.Move((tt.startY + tt.endY) / 2)
			s.Move(tt.endY)
			s.End()

			if got := ctrl.CurrentIndex(); got != tt.wantIndex {
				t.Errorf("currentIndex = %d, want %d", got, tt.wantIndex)
			}
		})
	}
}

func TestSwipeTracker_EndWithoutStart(t *testing.T) {
	ctrl := NewController()
	ctrl.SetEntries(entries("1", "2"))
	s := NewSwipeTracker(ctrl)
	s.End() // no gesture in progress
	if ctrl.CurrentIndex() != 0 {
		t.Error("end without start mutated state")
	}
}

func TestHandleKey(t *testing.T) {
	ctrl := NewController()
	ctrl.SetEntries(entries("1", "2", "3"))

	if !HandleKey(ctrl, "ArrowDown") {
		t.Error("ArrowDown not consumed")
	}
	if ctrl.CurrentIndex() != 1 {
		t.Errorf("currentIndex = %d, want 1", ctrl.CurrentIndex())
	}
	if !HandleKey(ctrl, "ArrowUp") {
		t.Error("ArrowUp not consumed")
	}
	if ctrl.CurrentIndex() != 0 {
		t.Errorf("currentIndex = %d, want 0", ctrl.CurrentIndex())
	}
	if HandleKey(ctrl, "Enter") {
		t.Error("unrelated key consumed")
	}
}

func TestIndexForScroll(t *testing.T) {
	tests := []struct {
		name         string
		offset       float64
		entryHeight  float64
		want         int
	}{
		{"at top", 0, 800, 0},
		{"exactly one entry", 800, 800, 1},
		{"rounds down", 1100, 800, 1},
		{"rounds up", 1300, 800, 2},
		{"midpoint rounds up", 1200, 800, 2},
		{"negative clamped", -50, 800, 0},
		{"zero height", 400, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IndexForScroll(tt.offset, tt.entryHeight); got != tt.want {
				t.Errorf("IndexForScroll(%v, %v) = %d, want %d", tt.offset, tt.entryHeight, got, tt.want)
			}
		})
	}
}
