package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/Garsondee/trail-arena/internal/game"
)

func main() {
	var size string
	var fullscreen bool
	var opts game.Options

	flag.StringVar(&size, "size", "1000x900", "window size WIDTHxHEIGHT")
	flag.BoolVar(&fullscreen, "fullscreen", false, "start fullscreen (F11 toggles)")
	flag.BoolVar(&opts.Bot, "bot", false, "let the bot drive the yellow player")
	flag.BoolVar(&opts.Mute, "mute", false, "disable sound")
	flag.Int64Var(&opts.Seed, "seed", 0, "RNG seed (0 seeds from the clock)")
	flag.BoolVar(&opts.DisableQuit, "arcade", false, "hide the Quit option")
	flag.BoolVar(&opts.Debug, "debug", false, "also log match events to logs/game.log")
	flag.Parse()

	w, h, err := game.ParseSize(size)
	if err != nil {
		log.Fatalf("-size: %v", err)
	}
	opts.Width, opts.Height = w, h

	if opts.Debug {
		if f, err := openDebugLog(); err != nil {
			log.Printf("debug log: %v", err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	}

	g, err := game.New(opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := game.Run(g, "Trail Arena", fullscreen); err != nil {
		log.Fatal(err)
	}
}

func openDebugLog() (*os.File, error) {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join("logs", "game.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) // #nosec G302 G304 -- fixed local path
}
