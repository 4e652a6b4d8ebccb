package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/leveledit/level"
)

const (
	baseWidth     = 1280
	baseHeight    = 768
	toolbarHeight = 44

	doubleClickWindow = 350 * time.Millisecond
)

// Editor is the Ebiten game for the platform editor. It owns the canvas
// transform and input edge detection and forwards gestures to the Session.
type Editor struct {
	cfg     Config
	session *Session

	ui            *ebitenui.UI
	fileNameInput *widget.TextInput

	// canvas transform
	zoom             float64
	offsetX, offsetY float64
	panning          bool
	lastPanX         int
	lastPanY         int

	// left-button gesture state
	gesturing bool
	lastClick time.Time
	lastCellX int
	lastCellY int

	clipboardOK bool

	status    string
	statusErr bool

	// solid images, one per configured color
	gridImg      *ebiten.Image
	borderImg    *ebiten.Image
	platformImg  *ebiten.Image
	previewImg   *ebiten.Image
	selectionImg *ebiten.Image
	hoverImg     *ebiten.Image

	filename string
}

func NewEditor(cfg Config) *Editor {
	e := &Editor{
		cfg:     cfg,
		session: NewSession(cfg.MaxUndo),
		zoom:    float64(baseWidth) / float64(level.WorldWidth),
		offsetY: toolbarHeight,
	}

	solid := func(hex string) *ebiten.Image {
		img := ebiten.NewImage(1, 1)
		img.Fill(parseHexColor(hex))
		return img
	}
	e.gridImg = solid(cfg.Colors.GridLine)
	e.borderImg = solid(cfg.Colors.Border)
	e.platformImg = solid(cfg.Colors.Platform)
	e.selectionImg = solid(cfg.Colors.Selection)

	preview := ebiten.NewImage(1, 1)
	preview.Fill(withAlpha(parseHexColor(cfg.Colors.Preview), 0xaa))
	e.previewImg = preview

	hover := ebiten.NewImage(level.GridSize, level.GridSize)
	hover.Fill(withAlpha(parseHexColor(cfg.Colors.Hover), 0x88))
	e.hoverImg = hover

	e.ui, e.fileNameInput = BuildEditorUI("", e.Export, e.Import, e.undo)
	e.clipboardOK = initClipboard()

	return e
}

// OpenLevel imports path into the session and remembers it as the working
// file. A failure leaves the empty session in place.
func (e *Editor) OpenLevel(path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		e.setError(fmt.Sprintf("open %s: %v", path, err))
		return
	}
	if err := e.session.Import(b); err != nil {
		e.reportImportError(path, err)
		return
	}
	e.filename = path
	e.fileNameInput.SetText(path)
	e.setStatus(fmt.Sprintf("loaded %s (%d platforms)", path, len(e.session.Platforms())))
}

func (e *Editor) Update() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)

	// Undo (Ctrl+Z)
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) && ctrl {
		e.undo()
	}
	// Save (Ctrl+S)
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && ctrl {
		e.Export()
	}
	// Clipboard export/import (Ctrl+C / Ctrl+V)
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && ctrl {
		e.copyToClipboard()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) && ctrl {
		e.pasteFromClipboard()
	}

	e.ui.Update()

	mx, my := ebiten.CursorPosition()

	// Handle pan (middle mouse drag)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		e.panning = true
		e.lastPanX, e.lastPanY = mx, my
	}
	if e.panning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		e.offsetX += float64(mx - e.lastPanX)
		e.offsetY += float64(my - e.lastPanY)
		e.lastPanX, e.lastPanY = mx, my
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		e.panning = false
	}

	// Handle zoom (mouse wheel, centered on cursor)
	if _, wy := ebiten.Wheel(); wy != 0 && my >= toolbarHeight {
		oldZoom := e.zoom
		if wy > 0 {
			e.zoom *= 1.1
		} else {
			e.zoom /= 1.1
		}
		if e.zoom < 0.25 {
			e.zoom = 0.25
		}
		if e.zoom > 8.0 {
			e.zoom = 8.0
		}
		if e.zoom != oldZoom {
			worldX := (float64(mx) - e.offsetX) / oldZoom
			worldY := (float64(my) - e.offsetY) / oldZoom
			e.offsetX = float64(mx) - worldX*e.zoom
			e.offsetY = float64(my) - worldY*e.zoom
		}
	}

	// Left-button gesture. Ignore presses over the toolbar so button clicks
	// don't also edit the canvas underneath.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !ebuiinput.UIHovered {
		if cx, cy, ok := e.screenToCanvas(mx, my); ok {
			cellX, cellY := level.Snap(cx), level.Snap(cy)
			now := time.Now()
			if now.Sub(e.lastClick) <= doubleClickWindow && cellX == e.lastCellX && cellY == e.lastCellY {
				if e.session.DoubleClick(cx, cy) {
					e.setStatus(fmt.Sprintf("deleted platform (%d left)", len(e.session.Platforms())))
				}
				e.lastClick = time.Time{}
			} else {
				shift := ebiten.IsKeyPressed(ebiten.KeyShift)
				e.session.PointerDown(cx, cy, shift)
				e.gesturing = true
				e.lastClick = now
				e.lastCellX, e.lastCellY = cellX, cellY
			}
		}
	} else if e.gesturing && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if cx, cy, ok := e.screenToCanvas(mx, my); ok {
			e.session.PointerMove(cx, cy)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && e.gesturing {
		before := len(e.session.Platforms())
		e.session.PointerUp()
		e.gesturing = false
		if after := len(e.session.Platforms()); after > before {
			p := e.session.Platforms()[after-1]
			e.setStatus(fmt.Sprintf("added platform %dx%d at (%d,%d)", p.Width, p.Height, p.X, p.Y))
		}
	}

	return nil
}

// screenToCanvas maps screen coordinates through the pan/zoom transform
// into logical canvas units. Points over the toolbar are rejected.
func (e *Editor) screenToCanvas(sx, sy int) (int, int, bool) {
	if sy < toolbarHeight {
		return 0, 0, false
	}
	if e.zoom == 0 {
		e.zoom = 1.0
	}
	cx := (float64(sx) - e.offsetX) / e.zoom
	cy := (float64(sy) - e.offsetY) / e.zoom
	return int(cx), int(cy), true
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(parseHexColor(e.cfg.Colors.Background))

	applyCanvas := func(op *ebiten.DrawImageOptions, tx, ty float64) {
		op.GeoM.Translate(tx, ty)
		op.GeoM.Scale(e.zoom, e.zoom)
		op.GeoM.Translate(e.offsetX, e.offsetY)
	}

	// grid lines across the world
	for x := 0; x <= level.WorldWidth; x += level.GridSize {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1, level.WorldHeight)
		applyCanvas(op, float64(x), 0)
		screen.DrawImage(e.gridImg, op)
	}
	for y := 0; y <= level.WorldHeight; y += level.GridSize {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(level.WorldWidth, 1)
		applyCanvas(op, 0, float64(y))
		screen.DrawImage(e.gridImg, op)
	}

	// world border
	e.drawOutline(screen, applyCanvas, e.borderImg, 0, 0, level.WorldWidth, level.WorldHeight)

	// platforms in list order (later entries on top)
	for _, p := range e.session.Platforms() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(p.Width), float64(p.Height))
		applyCanvas(op, float64(p.X), float64(p.Y))
		screen.DrawImage(e.platformImg, op)
	}

	// selection outline while moving/resizing
	if i := e.session.Selected(); i >= 0 && i < len(e.session.Platforms()) {
		p := e.session.Platforms()[i]
		e.drawOutline(screen, applyCanvas, e.selectionImg, p.X, p.Y, p.Width, p.Height)
	}

	// draw preview (never part of the list until release)
	if c, ok := e.session.Candidate(); ok && c.Width > 0 && c.Height > 0 {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(c.Width), float64(c.Height))
		applyCanvas(op, float64(c.X), float64(c.Y))
		screen.DrawImage(e.previewImg, op)
	}

	// hover cell highlight
	mx, my := ebiten.CursorPosition()
	if cx, cy, ok := e.screenToCanvas(mx, my); ok && !ebuiinput.UIHovered {
		gx, gy := level.Snap(cx), level.Snap(cy)
		if gx >= 0 && gy >= 0 && gx < level.WorldWidth && gy < level.WorldHeight {
			op := &ebiten.DrawImageOptions{}
			applyCanvas(op, float64(gx), float64(gy))
			screen.DrawImage(e.hoverImg, op)
		}
	}

	instr := fmt.Sprintf("Drag: draw   Click+drag: move   Shift+drag: resize   Double-click: delete   Ctrl+Z: undo   Ctrl+S: export   Ctrl+C/V: clipboard\nplatforms=%d history=%d mode=%s zoom=%.2f",
		len(e.session.Platforms()), e.session.HistoryLen(), e.session.Mode(), e.zoom)
	ebitenutil.DebugPrintAt(screen, instr, 4, toolbarHeight+4)
	if e.status != "" {
		ebitenutil.DebugPrintAt(screen, e.status, 4, baseHeight-18)
	}

	e.ui.Draw(screen)
}

func (e *Editor) drawOutline(screen *ebiten.Image, applyCanvas func(*ebiten.DrawImageOptions, float64, float64), img *ebiten.Image, x, y, w, h int) {
	top := &ebiten.DrawImageOptions{}
	top.GeoM.Scale(float64(w), 1)
	applyCanvas(top, float64(x), float64(y))
	screen.DrawImage(img, top)
	bottom := &ebiten.DrawImageOptions{}
	bottom.GeoM.Scale(float64(w), 1)
	applyCanvas(bottom, float64(x), float64(y+h-1))
	screen.DrawImage(img, bottom)
	left := &ebiten.DrawImageOptions{}
	left.GeoM.Scale(1, float64(h))
	applyCanvas(left, float64(x), float64(y))
	screen.DrawImage(img, left)
	right := &ebiten.DrawImageOptions{}
	right.GeoM.Scale(1, float64(h))
	applyCanvas(right, float64(x+w-1), float64(y))
	screen.DrawImage(img, right)
}

func (e *Editor) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("Layout called; use LayoutF instead")
}

// Export writes the current platform list to the file named in the
// toolbar, defaulting to a timestamped file in the levels dir.
func (e *Editor) Export() {
	name := strings.TrimSpace(e.fileNameInput.GetText())
	if name == "" {
		name = filepath.Join(e.cfg.LevelsDir, fmt.Sprintf("level_%d.json", time.Now().Unix()))
		e.fileNameInput.SetText(name)
	} else if filepath.Ext(name) == "" {
		name += ".json"
	}
	if err := e.session.Document().Save(name); err != nil {
		e.setError(fmt.Sprintf("save %s: %v", name, err))
		return
	}
	e.filename = name
	e.setStatus(fmt.Sprintf("saved %d platforms to %s", len(e.session.Platforms()), name))
}

// Import replaces the platform list from the file named in the toolbar.
// Failures leave the list and history untouched.
func (e *Editor) Import() {
	name := strings.TrimSpace(e.fileNameInput.GetText())
	if name == "" {
		e.setError("no file name to import")
		return
	}
	b, err := os.ReadFile(name)
	if err != nil {
		e.setError(fmt.Sprintf("read %s: %v", name, err))
		return
	}
	if err := e.session.Import(b); err != nil {
		e.reportImportError(name, err)
		return
	}
	e.filename = name
	e.setStatus(fmt.Sprintf("imported %d platforms from %s", len(e.session.Platforms()), name))
}

func (e *Editor) reportImportError(name string, err error) {
	switch {
	case errors.Is(err, level.ErrMissingPlatforms):
		e.setError(fmt.Sprintf("%s is not a platforms document (missing \"platforms\" array)", name))
	case errors.Is(err, level.ErrMalformed):
		e.setError(fmt.Sprintf("%s: %v", name, err))
	default:
		e.setError(fmt.Sprintf("import %s: %v", name, err))
	}
}

func (e *Editor) undo() {
	if e.session.Undo() {
		e.setStatus(fmt.Sprintf("undo (%d snapshots left)", e.session.HistoryLen()))
	} else {
		e.setStatus("nothing to undo")
	}
}

func (e *Editor) copyToClipboard() {
	if !e.clipboardOK {
		e.setError("clipboard unavailable")
		return
	}
	b, err := e.session.ExportJSON()
	if err != nil {
		e.setError(fmt.Sprintf("encode: %v", err))
		return
	}
	writeClipboard(b)
	e.setStatus(fmt.Sprintf("copied %d platforms to clipboard", len(e.session.Platforms())))
}

func (e *Editor) pasteFromClipboard() {
	if !e.clipboardOK {
		e.setError("clipboard unavailable")
		return
	}
	b := readClipboard()
	if len(b) == 0 {
		e.setError("clipboard is empty")
		return
	}
	if err := e.session.Import(b); err != nil {
		e.reportImportError("clipboard", err)
		return
	}
	e.setStatus(fmt.Sprintf("imported %d platforms from clipboard", len(e.session.Platforms())))
}

func (e *Editor) setStatus(msg string) {
	e.status = msg
	e.statusErr = false
	log.Println(msg)
}

func (e *Editor) setError(msg string) {
	e.status = msg
	e.statusErr = true
	log.Println(msg)
}
