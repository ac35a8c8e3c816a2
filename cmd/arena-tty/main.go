package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Garsondee/trail-arena/internal/arena"
	"github.com/Garsondee/trail-arena/internal/tty"
	"github.com/gdamore/tcell/v2"
)

func main() {
	var modeName, speedName string
	var opts tty.Options
	var debugLog bool

	flag.StringVar(&modeName, "mode", "standard", "game mode: standard, infinite or starve")
	flag.StringVar(&speedName, "speed", "medium", "speed tier: slow, medium or fast")
	flag.BoolVar(&opts.Play, "play", false, "skip the menu and start -mode")
	flag.BoolVar(&opts.Bot, "bot", false, "let the bot drive the yellow player")
	flag.BoolVar(&opts.Mute, "mute", false, "disable sound")
	flag.Int64Var(&opts.Seed, "seed", 0, "RNG seed (0 seeds from the clock)")
	flag.BoolVar(&debugLog, "debug", false, "log match events to logs/arena-tty.log")
	flag.Parse()

	var err error
	if opts.Mode, err = arena.ParseMode(modeName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if opts.Speed, err = arena.ParseSpeed(speedName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	opts.Debug = debugLog

	if f := setupLogging(debugLog); f != nil {
		defer f.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before printing a crash.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nARENA CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	runErr := tty.New(screen, opts).Run()
	screen.Fini()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}
