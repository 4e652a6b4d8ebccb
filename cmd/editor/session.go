package main

import (
	"github.com/milk9111/leveledit/level"
)

type mode int

const (
	modeIdle mode = iota
	modeDrawing
	modeMoving
	modeResizing
)

func (m mode) String() string {
	switch m {
	case modeIdle:
		return "Idle"
	case modeDrawing:
		return "Drawing"
	case modeMoving:
		return "Moving"
	case modeResizing:
		return "Resizing"
	default:
		return "Unknown"
	}
}

// Session holds the editable platform list, the undo history, and the
// pointer gesture state machine. It knows nothing about the screen: all
// coordinates arriving here are logical canvas units, snapped internally.
type Session struct {
	platforms []level.Platform

	// history stores deep copies of the platform list, appended after every
	// structural mutation (add/delete/import). Undo pops the top entry and
	// restores the list to the new top, or to empty when none remain.
	history    [][]level.Platform
	maxHistory int

	mode     mode
	selected int

	// drag anchor for drawing, last snapped pointer for moving
	dragX, dragY int
	lastX, lastY int

	candidate    level.Platform
	hasCandidate bool
}

func NewSession(maxHistory int) *Session {
	if maxHistory <= 0 {
		maxHistory = 100
	}
	return &Session{maxHistory: maxHistory, selected: -1}
}

func (s *Session) Platforms() []level.Platform { return s.platforms }
func (s *Session) Mode() mode                  { return s.mode }
func (s *Session) Selected() int               { return s.selected }
func (s *Session) HistoryLen() int             { return len(s.history) }

// Candidate returns the in-progress draw preview, if any.
func (s *Session) Candidate() (level.Platform, bool) {
	return s.candidate, s.hasCandidate
}

// PointerDown begins a gesture at the given canvas point. A hit on an
// existing platform selects it and enters move mode (or resize mode when
// the modifier is held); a miss starts drawing a new platform. No mutation
// happens until the gesture progresses.
func (s *Session) PointerDown(x, y int, resize bool) {
	sx, sy := level.Snap(x), level.Snap(y)
	if i := level.HitTest(s.platforms, sx, sy); i >= 0 {
		s.selected = i
		if resize {
			s.mode = modeResizing
		} else {
			s.mode = modeMoving
		}
		s.lastX, s.lastY = sx, sy
		return
	}
	s.mode = modeDrawing
	s.dragX, s.dragY = sx, sy
	s.candidate = level.Platform{X: sx, Y: sy}
	s.hasCandidate = true
}

// PointerMove advances the active gesture. Drawing only updates the
// preview; moving and resizing commit to the list immediately (without a
// history snapshot, matching the snapshot-per-structural-change rule).
func (s *Session) PointerMove(x, y int) {
	sx, sy := level.Snap(x), level.Snap(y)
	switch s.mode {
	case modeDrawing:
		s.candidate = level.Normalize(s.dragX, s.dragY, sx, sy)
		s.hasCandidate = true
	case modeMoving:
		if s.selected < 0 || s.selected >= len(s.platforms) {
			return
		}
		dx, dy := sx-s.lastX, sy-s.lastY
		s.platforms[s.selected].X += dx
		s.platforms[s.selected].Y += dy
		s.lastX, s.lastY = sx, sy
	case modeResizing:
		if s.selected < 0 || s.selected >= len(s.platforms) {
			return
		}
		p := &s.platforms[s.selected]
		w := sx - p.X
		h := sy - p.Y
		// never collapse below one grid unit, even when dragged past the origin
		if w < level.GridSize {
			w = level.GridSize
		}
		if h < level.GridSize {
			h = level.GridSize
		}
		p.Width, p.Height = w, h
	}
}

// PointerUp ends the gesture. Only drawing commits anything: a non-empty
// candidate is appended and a snapshot pushed. Degenerate (zero-area)
// candidates are discarded. Every mode returns to idle.
func (s *Session) PointerUp() {
	if s.mode == modeDrawing && s.hasCandidate &&
		s.candidate.Width > 0 && s.candidate.Height > 0 {
		s.platforms = append(s.platforms, s.candidate)
		s.pushSnapshot()
	}
	s.mode = modeIdle
	s.selected = -1
	s.hasCandidate = false
}

// DoubleClick deletes the first platform containing the snapped point and
// records a snapshot. Returns false when nothing was hit.
func (s *Session) DoubleClick(x, y int) bool {
	sx, sy := level.Snap(x), level.Snap(y)
	i := level.HitTest(s.platforms, sx, sy)
	if i < 0 {
		return false
	}
	s.platforms = append(s.platforms[:i], s.platforms[i+1:]...)
	s.pushSnapshot()
	return true
}

// Undo discards the most recent snapshot and restores the list to the new
// top of the stack, or to empty when the stack drains.
func (s *Session) Undo() bool {
	n := len(s.history)
	if n == 0 {
		return false
	}
	s.history = s.history[:n-1]
	if len(s.history) == 0 {
		s.platforms = nil
	} else {
		s.platforms = level.ClonePlatforms(s.history[len(s.history)-1])
	}
	s.mode = modeIdle
	s.selected = -1
	s.hasCandidate = false
	return true
}

// Import replaces the platform list with a decoded document and pushes a
// snapshot. On any decode error the list and history are left untouched.
func (s *Session) Import(data []byte) error {
	lvl, err := level.Decode(data)
	if err != nil {
		return err
	}
	s.platforms = level.ClonePlatforms(lvl.Platforms)
	s.pushSnapshot()
	return nil
}

// ExportJSON renders the current list as an indented platforms document.
func (s *Session) ExportJSON() ([]byte, error) {
	return (&level.Level{Platforms: s.platforms}).Encode()
}

// Document returns the current list wrapped for persistence.
func (s *Session) Document() *level.Level {
	return &level.Level{Platforms: s.platforms}
}

func (s *Session) pushSnapshot() {
	s.history = append(s.history, level.ClonePlatforms(s.platforms))
	if len(s.history) > s.maxHistory {
		// drop oldest
		s.history = s.history[1:]
	}
}
