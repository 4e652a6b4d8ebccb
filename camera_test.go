package main

import "testing"

func TestCameraClamp(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		wantX  float64
		wantY  float64
	}{
		{name: "stays_at_origin", dx: -100, dy: -100, wantX: 0, wantY: 0},
		{name: "moves_within_world", dx: 300, dy: 200, wantX: 300, wantY: 200},
		{name: "clamps_right_edge", dx: 10000, dy: 0, wantX: 4096 - 800, wantY: 0},
		{name: "clamps_bottom_edge", dx: 0, dy: 10000, wantX: 0, wantY: 2048 - 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(800, 600)
			c.Move(tt.dx, tt.dy)
			if c.X != tt.wantX || c.Y != tt.wantY {
				t.Errorf("got (%v, %v), want (%v, %v)", c.X, c.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCameraCenterOn(t *testing.T) {
	c := NewCamera(800, 600)

	c.CenterOn(2048, 1024)
	if c.X != 2048-400 || c.Y != 1024-300 {
		t.Errorf("got (%v, %v), want (1648, 724)", c.X, c.Y)
	}

	c.CenterOn(0, 0)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("got (%v, %v), want (0, 0)", c.X, c.Y)
	}
}

func TestCameraApply(t *testing.T) {
	c := NewCamera(800, 600)
	c.Move(100, 50)

	x, y := c.Apply(160, 80)
	if x != 60 || y != 30 {
		t.Errorf("got (%v, %v), want (60, 30)", x, y)
	}
}
