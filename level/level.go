package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// GridSize is the snap unit applied to every coordinate before use.
	GridSize = 16

	// World dimensions in logical units.
	WorldWidth  = 4096
	WorldHeight = 2048
)

var (
	ErrMalformed        = errors.New("malformed level document")
	ErrMissingPlatforms = errors.New(`level document has no "platforms" array`)
)

// Platform is an axis-aligned rectangle in the level layout. Coordinates and
// dimensions are grid-aligned; Width and Height are positive once a drag has
// been normalized.
type Platform struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether the point lies inside the platform's half-open
// bounds [X, X+Width) x [Y, Y+Height).
func (p Platform) Contains(x, y int) bool {
	return x >= p.X && x < p.X+p.Width &&
		y >= p.Y && y < p.Y+p.Height
}

// Level is the persisted document: an ordered list of platforms. List order
// is draw order, so later platforms render on top.
type Level struct {
	Platforms []Platform `json:"platforms"`
}

// Snap floors v to the containing grid cell boundary.
func Snap(v int) int {
	q := v / GridSize
	if v%GridSize != 0 && v < 0 {
		q--
	}
	return q * GridSize
}

// Normalize builds a platform from two snapped corners, flipping the origin
// when the drag ran in a negative direction. Width/Height are the absolute
// coordinate deltas and may be zero for a degenerate drag.
func Normalize(x0, y0, x1, y1 int) Platform {
	p := Platform{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	if p.Width < 0 {
		p.X = x1
		p.Width = -p.Width
	}
	if p.Height < 0 {
		p.Y = y1
		p.Height = -p.Height
	}
	return p
}

// HitTest returns the index of the first platform in list order containing
// the point, or -1 when nothing matches.
func HitTest(platforms []Platform, x, y int) int {
	for i, p := range platforms {
		if p.Contains(x, y) {
			return i
		}
	}
	return -1
}

// ClonePlatforms deep-copies a platform list. Snapshots taken for undo must
// not alias the live list.
func ClonePlatforms(src []Platform) []Platform {
	dst := make([]Platform, len(src))
	copy(dst, src)
	return dst
}

// Decode parses a level document. A JSON parse failure wraps ErrMalformed;
// a document without a platforms array returns ErrMissingPlatforms. Neither
// partially populates a level.
func Decode(b []byte) (*Level, error) {
	var doc struct {
		Platforms *[]Platform `json:"platforms"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Platforms == nil {
		return nil, ErrMissingPlatforms
	}
	return &Level{Platforms: *doc.Platforms}, nil
}

// Encode renders the document with 2-space indentation. A nil platform list
// is written as an empty array rather than null.
func (l *Level) Encode() ([]byte, error) {
	out := l
	if l.Platforms == nil {
		out = &Level{Platforms: []Platform{}}
	}
	return json.MarshalIndent(out, "", "  ")
}

// Load reads and decodes a level file.
func Load(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

// Save writes the document to path, creating parent directories as needed.
func (l *Level) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	b, err := l.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}
