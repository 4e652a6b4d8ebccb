package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	levelFile = flag.String("level", "levels/level.json", "level file to preview")
	monitor   = flag.Bool("m", false, "use the base monitor")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if *monitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	preview, err := NewPreview(*levelFile)
	if err != nil {
		return err
	}
	defer preview.Close()

	ebiten.SetWindowSize(previewWidth, previewHeight)
	ebiten.SetWindowTitle("leveledit preview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(preview)
}
