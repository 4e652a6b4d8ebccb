package main

import (
	"errors"
	"reflect"
	"testing"

	"github.com/milk9111/leveledit/level"
)

func drawRect(s *Session, x0, y0, x1, y1 int) {
	s.PointerDown(x0, y0, false)
	s.PointerMove(x1, y1)
	s.PointerUp()
}

func TestDrawGesture(t *testing.T) {
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		want           level.Platform
	}{
		{"unsnapped_corners", 10, 10, 50, 40, level.Platform{X: 0, Y: 0, Width: 48, Height: 32}},
		{"snapped_corners", 32, 64, 96, 96, level.Platform{X: 32, Y: 64, Width: 64, Height: 32}},
		{"negative_direction", 96, 96, 32, 64, level.Platform{X: 32, Y: 64, Width: 64, Height: 32}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSession(0)
			drawRect(s, c.x0, c.y0, c.x1, c.y1)
			if len(s.Platforms()) != 1 {
				t.Fatalf("expected 1 platform, got %d", len(s.Platforms()))
			}
			if got := s.Platforms()[0]; got != c.want {
				t.Fatalf("drew %+v, want %+v", got, c.want)
			}
			if s.HistoryLen() != 1 {
				t.Fatalf("expected 1 history snapshot after draw, got %d", s.HistoryLen())
			}
			if s.Mode() != modeIdle {
				t.Fatalf("expected idle after release, got %s", s.Mode())
			}
		})
	}
}

func TestDrawZeroAreaDiscarded(t *testing.T) {
	s := NewSession(0)
	// release without leaving the starting cell
	s.PointerDown(8, 8, false)
	s.PointerMove(12, 4)
	s.PointerUp()

	if len(s.Platforms()) != 0 {
		t.Fatalf("zero-area drag must not commit, got %+v", s.Platforms())
	}
	if s.HistoryLen() != 0 {
		t.Fatalf("zero-area drag must not snapshot, history=%d", s.HistoryLen())
	}
}

func TestDrawPreviewDoesNotMutateList(t *testing.T) {
	s := NewSession(0)
	s.PointerDown(0, 0, false)
	s.PointerMove(64, 64)

	if len(s.Platforms()) != 0 {
		t.Fatalf("preview mutated list: %+v", s.Platforms())
	}
	c, ok := s.Candidate()
	if !ok {
		t.Fatal("expected an active candidate during draw")
	}
	want := level.Platform{X: 0, Y: 0, Width: 64, Height: 64}
	if c != want {
		t.Fatalf("candidate = %+v, want %+v", c, want)
	}
}

func TestMoveGesture(t *testing.T) {
	s := NewSession(0)
	drawRect(s, 0, 0, 64, 64)

	s.PointerDown(8, 8, false)
	if s.Mode() != modeMoving {
		t.Fatalf("expected moving after hit, got %s", s.Mode())
	}
	s.PointerMove(40, 24) // snapped (32,16), delta from (0,0)
	s.PointerMove(72, 24) // snapped (64,16), further delta
	s.PointerUp()

	want := level.Platform{X: 64, Y: 16, Width: 64, Height: 64}
	if got := s.Platforms()[0]; got != want {
		t.Fatalf("moved platform = %+v, want %+v", got, want)
	}
	// moving is not a structural mutation
	if s.HistoryLen() != 1 {
		t.Fatalf("move must not snapshot, history=%d", s.HistoryLen())
	}
}

func TestResizeGesture(t *testing.T) {
	cases := []struct {
		name  string
		toX   int
		toY   int
		wantW int
		wantH int
	}{
		{"grow", 128, 96, 128, 96},
		{"shrink_to_minimum", 4, 4, level.GridSize, level.GridSize},
		{"past_origin_clamps", -80, -80, level.GridSize, level.GridSize},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSession(0)
			drawRect(s, 0, 0, 64, 64)

			s.PointerDown(8, 8, true)
			if s.Mode() != modeResizing {
				t.Fatalf("expected resizing with modifier held, got %s", s.Mode())
			}
			s.PointerMove(c.toX, c.toY)
			s.PointerUp()

			got := s.Platforms()[0]
			if got.Width != c.wantW || got.Height != c.wantH {
				t.Fatalf("resized to %dx%d, want %dx%d", got.Width, got.Height, c.wantW, c.wantH)
			}
			if got.X != 0 || got.Y != 0 {
				t.Fatalf("resize moved origin: %+v", got)
			}
		})
	}
}

func TestHitSelectsFirstInListOrder(t *testing.T) {
	// Overlapping platforms can't be drawn by gesture (the second press would
	// hit the first platform and start a move), so import them instead.
	s := NewSession(0)
	doc := `{"platforms":[
		{"x":0,"y":0,"width":64,"height":64},
		{"x":32,"y":32,"width":96,"height":96}
	]}`
	if err := s.Import([]byte(doc)); err != nil {
		t.Fatalf("setup import: %v", err)
	}

	platforms := s.Platforms()
	if len(platforms) != 2 {
		t.Fatalf("setup: got %d platforms, want 2", len(platforms))
	}
	if platforms[0].X != 0 || platforms[1].X != 32 {
		t.Fatalf("setup: list order not preserved: %+v", platforms)
	}

	// (40,40) lies inside both; the earlier list entry wins.
	s.PointerDown(40, 40, false)
	if s.Selected() != 0 {
		t.Fatalf("expected first platform selected in overlap, got %d", s.Selected())
	}
	if s.Mode() != modeMoving {
		t.Fatalf("expected move mode on hit, got %s", s.Mode())
	}
	s.PointerUp()

	// Outside the first platform but inside the second.
	s.PointerDown(100, 100, false)
	if s.Selected() != 1 {
		t.Fatalf("expected second platform selected, got %d", s.Selected())
	}
	s.PointerUp()
}

func TestDoubleClickDelete(t *testing.T) {
	s := NewSession(0)
	drawRect(s, 0, 0, 16, 16)
	if s.HistoryLen() != 1 {
		t.Fatalf("setup: history=%d", s.HistoryLen())
	}

	if !s.DoubleClick(8, 8) {
		t.Fatal("expected double-click at (8,8) to hit")
	}
	if len(s.Platforms()) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", s.Platforms())
	}
	if s.HistoryLen() != 2 {
		t.Fatalf("delete must snapshot, history=%d", s.HistoryLen())
	}

	if s.DoubleClick(200, 200) {
		t.Fatal("double-click on empty space must not report a hit")
	}
	if s.HistoryLen() != 2 {
		t.Fatalf("missed double-click must not snapshot, history=%d", s.HistoryLen())
	}
}

func TestHistoryPerStructuralMutation(t *testing.T) {
	s := NewSession(0)

	drawRect(s, 0, 0, 16, 16)
	drawRect(s, 32, 0, 48, 16)
	drawRect(s, 64, 0, 80, 16)
	s.DoubleClick(8, 8)

	if s.HistoryLen() != 4 {
		t.Fatalf("expected 4 snapshots after 4 mutations, got %d", s.HistoryLen())
	}

	for i := 0; i < 4; i++ {
		if !s.Undo() {
			t.Fatalf("undo %d failed with non-empty history", i)
		}
	}
	if len(s.Platforms()) != 0 {
		t.Fatalf("expected empty list after undoing everything, got %+v", s.Platforms())
	}
	if s.Undo() {
		t.Fatal("undo with empty history must be a no-op")
	}
}

func TestUndoPopThenRestore(t *testing.T) {
	s := NewSession(0)
	drawRect(s, 0, 0, 16, 16)
	drawRect(s, 32, 0, 48, 16)

	// pop the two-platform snapshot; the list becomes the one-platform top
	if !s.Undo() {
		t.Fatal("undo failed")
	}
	want := []level.Platform{{X: 0, Y: 0, Width: 16, Height: 16}}
	if !reflect.DeepEqual(s.Platforms(), want) {
		t.Fatalf("after undo: %+v, want %+v", s.Platforms(), want)
	}

	// popping the last snapshot drains to empty
	if !s.Undo() {
		t.Fatal("second undo failed")
	}
	if len(s.Platforms()) != 0 {
		t.Fatalf("after final undo: %+v, want empty", s.Platforms())
	}
}

func TestUndoSnapshotsDoNotAlias(t *testing.T) {
	s := NewSession(0)
	drawRect(s, 0, 0, 16, 16)
	drawRect(s, 32, 0, 48, 16)

	// move the first platform after its snapshot was taken
	s.PointerDown(8, 8, false)
	s.PointerMove(8+64, 8)
	s.PointerUp()

	s.Undo() // back to the one-platform snapshot
	want := level.Platform{X: 0, Y: 0, Width: 16, Height: 16}
	if got := s.Platforms()[0]; got != want {
		t.Fatalf("snapshot was aliased by later move: %+v, want %+v", got, want)
	}
}

func TestImport(t *testing.T) {
	valid := []byte(`{"platforms":[{"x":0,"y":0,"width":48,"height":32},{"x":64,"y":64,"width":16,"height":16}]}`)

	t.Run("replaces_list_and_snapshots", func(t *testing.T) {
		s := NewSession(0)
		drawRect(s, 0, 0, 16, 16)

		if err := s.Import(valid); err != nil {
			t.Fatalf("import failed: %v", err)
		}
		if len(s.Platforms()) != 2 {
			t.Fatalf("expected 2 platforms after import, got %d", len(s.Platforms()))
		}
		if s.HistoryLen() != 2 {
			t.Fatalf("import must snapshot, history=%d", s.HistoryLen())
		}
	})

	t.Run("failures_leave_state_untouched", func(t *testing.T) {
		cases := []struct {
			name    string
			doc     string
			wantErr error
		}{
			{"malformed", `{"platforms":[`, level.ErrMalformed},
			{"missing_key", `{"tiles":[]}`, level.ErrMissingPlatforms},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				s := NewSession(0)
				drawRect(s, 0, 0, 16, 16)
				before := level.ClonePlatforms(s.Platforms())

				err := s.Import([]byte(c.doc))
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("import error = %v, want %v", err, c.wantErr)
				}
				if !reflect.DeepEqual(s.Platforms(), before) {
					t.Fatalf("failed import mutated list: %+v", s.Platforms())
				}
				if s.HistoryLen() != 1 {
					t.Fatalf("failed import mutated history: %d", s.HistoryLen())
				}
			})
		}
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	s := NewSession(0)
	drawRect(s, 0, 0, 48, 32)
	drawRect(s, 128, 256, 192, 272)

	b, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	other := NewSession(0)
	if err := other.Import(b); err != nil {
		t.Fatalf("import of exported document failed: %v", err)
	}
	if !reflect.DeepEqual(other.Platforms(), s.Platforms()) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", other.Platforms(), s.Platforms())
	}
}

func TestHistoryCap(t *testing.T) {
	s := NewSession(3)
	for i := 0; i < 5; i++ {
		drawRect(s, i*32, 0, i*32+16, 16)
	}
	if s.HistoryLen() != 3 {
		t.Fatalf("expected history capped at 3, got %d", s.HistoryLen())
	}
}
