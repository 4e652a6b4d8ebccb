package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/leveledit/level"
)

const (
	previewWidth  = 800
	previewHeight = 600

	panSpeed    = 8
	borderThick = 5
)

// Preview renders a level file read-only with a pannable camera and
// reloads it whenever the file changes on disk.
type Preview struct {
	path   string
	lvl    *level.Level
	camera *Camera
	watch  *level.Watcher
	status string

	platformImg *ebiten.Image
	borderImg   *ebiten.Image
}

func NewPreview(path string) (*Preview, error) {
	p := &Preview{
		path:        path,
		lvl:         &level.Level{},
		camera:      NewCamera(previewWidth, previewHeight),
		platformImg: solidImage(color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}),
		borderImg:   solidImage(color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}),
	}

	if err := p.reload(); err != nil {
		return nil, err
	}

	w, err := level.NewWatcher(filepath.Dir(path))
	if err != nil {
		log.Println("file watching disabled:", err)
	} else {
		p.watch = w
	}

	return p, nil
}

func (p *Preview) Close() {
	if p.watch != nil {
		p.watch.Close()
	}
}

func (p *Preview) Update() error {
	p.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := p.reload(); err != nil {
			p.status = fmt.Sprintf("reload failed: %v", err)
		}
	}

	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += panSpeed
	}
	if dx != 0 || dy != 0 {
		p.camera.Move(dx, dy)
	}

	return nil
}

func (p *Preview) drainWatcher() {
	if p.watch == nil {
		return
	}
	for {
		select {
		case path := <-p.watch.Events:
			if filepath.Clean(path) != filepath.Clean(p.path) {
				continue
			}
			if err := p.reload(); err != nil {
				p.status = fmt.Sprintf("reload failed: %v", err)
			}
		case err := <-p.watch.Errors:
			log.Println("watch error:", err)
		default:
			return
		}
	}
}

func (p *Preview) reload() error {
	lvl, err := level.Load(p.path)
	if err != nil {
		return err
	}
	p.lvl = lvl
	p.status = fmt.Sprintf("%s: %d platforms", filepath.Base(p.path), len(lvl.Platforms))
	log.Println("loaded", p.path)
	return nil
}

func (p *Preview) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	p.drawBorders(screen)

	for _, pl := range p.lvl.Platforms {
		sx, sy := p.camera.Apply(float64(pl.X), float64(pl.Y))
		if sx+float64(pl.Width) < 0 || sy+float64(pl.Height) < 0 || sx > previewWidth || sy > previewHeight {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(pl.Width), float64(pl.Height))
		op.GeoM.Translate(sx, sy)
		screen.DrawImage(p.platformImg, op)
	}

	ebitenutil.DebugPrint(screen, p.status+"\narrows/WASD pan, R reload")
}

func (p *Preview) drawBorders(screen *ebiten.Image) {
	edges := [][4]float64{
		{0, 0, level.WorldWidth, borderThick},
		{0, level.WorldHeight - borderThick, level.WorldWidth, borderThick},
		{0, 0, borderThick, level.WorldHeight},
		{level.WorldWidth - borderThick, 0, borderThick, level.WorldHeight},
	}
	for _, e := range edges {
		sx, sy := p.camera.Apply(e[0], e[1])
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(e[2], e[3])
		op.GeoM.Translate(sx, sy)
		screen.DrawImage(p.borderImg, op)
	}
}

func (p *Preview) LayoutF(_, _ float64) (float64, float64) {
	return previewWidth, previewHeight
}

func (p *Preview) Layout(_, _ int) (int, int) {
	panic("use LayoutF instead")
}

func solidImage(c color.Color) *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(c)
	return img
}
