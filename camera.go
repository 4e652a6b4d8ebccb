package main

import (
	"github.com/milk9111/leveledit/level"
)

// Camera is a viewport into the world. Its top-left corner is clamped so
// the view never leaves the world bounds.
type Camera struct {
	X, Y float64

	viewW  float64
	viewH  float64
	worldW float64
	worldH float64
}

func NewCamera(viewW, viewH int) *Camera {
	c := &Camera{
		viewW:  float64(viewW),
		viewH:  float64(viewH),
		worldW: level.WorldWidth,
		worldH: level.WorldHeight,
	}
	c.clamp()
	return c
}

// Move pans the camera by the given delta, clamped to the world.
func (c *Camera) Move(dx, dy float64) {
	c.X += dx
	c.Y += dy
	c.clamp()
}

// CenterOn positions the viewport center over a world coordinate, clamped
// to the world.
func (c *Camera) CenterOn(x, y float64) {
	c.X = x - c.viewW/2
	c.Y = y - c.viewH/2
	c.clamp()
}

// Apply converts a world coordinate into a screen coordinate.
func (c *Camera) Apply(x, y float64) (float64, float64) {
	return x - c.X, y - c.Y
}

func (c *Camera) clamp() {
	maxX := c.worldW - c.viewW
	maxY := c.worldH - c.viewH
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	if c.X < 0 {
		c.X = 0
	} else if c.X > maxX {
		c.X = maxX
	}
	if c.Y < 0 {
		c.Y = 0
	} else if c.Y > maxY {
		c.Y = maxY
	}
}
