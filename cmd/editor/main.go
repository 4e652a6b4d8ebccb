package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelPath := flag.String("level", "", "level file to open (.json)")
	configPath := flag.String("config", "editor.yaml", "editor config file")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Printf("config: %v (using defaults)", err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("leveledit")

	editor := NewEditor(cfg)
	if *levelPath != "" {
		editor.OpenLevel(*levelPath)
	}

	if err := ebiten.RunGame(editor); err != nil {
		log.Fatal(err)
	}
}
