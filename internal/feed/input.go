package feed

import "math"

// SwipeThreshold is the vertical finger displacement, in pixels, a gesture
// must exceed before it counts as a swipe.
const SwipeThreshold = 50

// SwipeTracker turns raw vertical touch positions into advance/retreat calls
// on a Controller. Swipe up (finger moves toward smaller Y) advances; swipe
// down retreats.
type SwipeTracker struct {
	ctrl   *Controller
	startY float64
	lastY  float64
	active bool
}

func NewSwipeTracker(ctrl *Controller) *SwipeTracker {
	return &SwipeTracker{ctrl: ctrl}
}

// Start records the initial touch position.
func (s *SwipeTracker) Start(y float64) {
	s.startY = y
	s.lastY = y
	s.active = true
}

// Move records an intermediate touch position.
func (s *SwipeTracker) Move(y float64) {
	if s.active {
		s.lastY = y
	}
}

// End completes the gesture. The displacement must exceed SwipeThreshold for
// any navigation to fire; smaller movements are ignored.
func (s *SwipeTracker) End() {
	if !s.active {
		return
	}
	s.active = false

	delta := s.startY - s.lastY
	if math.Abs(delta) <= SwipeThreshold {
		return
	}
	if delta > 0 {
		s.ctrl.Advance()
	} else {
		s.ctrl.Retreat()
	}
}

// HandleKey maps arrow-key presses onto feed navigation. Unrecognized keys
// are ignored. It reports whether the key was consumed.
func HandleKey(ctrl *Controller, key string) bool {
	switch key {
	case "ArrowDown":
		ctrl.Advance()
	case "ArrowUp":
		ctrl.Retreat()
	default:
		return false
	}
	return true
}

// IndexForScroll derives the visible entry index from viewport geometry: the
// scroll offset divided by the per-entry height, rounded to nearest. Pure;
// callers feed the result to SetCurrentIndex, which drops out-of-range values.
func IndexForScroll(scrollOffset, entryHeight float64) int {
	if entryHeight <= 0 {
		return 0
	}
	idx := int(math.Round(scrollOffset / entryHeight))
	if idx < 0 {
		return 0
	}
	return idx
}
