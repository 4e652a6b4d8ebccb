package main

import (
	"log"

	"golang.design/x/clipboard"
)

// initClipboard reports whether the system clipboard can be used. Init can
// fail on headless setups; the editor degrades to file export/import only.
func initClipboard() bool {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		return false
	}
	return true
}

func writeClipboard(b []byte) {
	clipboard.Write(clipboard.FmtText, b)
}

func readClipboard() []byte {
	return clipboard.Read(clipboard.FmtText)
}
