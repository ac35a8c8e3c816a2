// Package tty runs the arena in a terminal. The canvas is downsampled onto
// half-block cells, so each terminal row shows two pixel rows.
package tty

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Garsondee/trail-arena/internal/arena"
	"github.com/Garsondee/trail-arena/internal/menu"
	"github.com/Garsondee/trail-arena/internal/sfx"
	"github.com/gdamore/tcell/v2"
)

const (
	// pixelScale is how many canvas pixels one half-block pixel covers.
	pixelScale = 4
	// hudRows are reserved under the arena for scores.
	hudRows = 1
	minCols = 40
	minRows = 12

	tickRate = 60
)

// ErrTooSmall is returned when the terminal cannot fit an arena.
var ErrTooSmall = errors.New("terminal too small")

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSelected = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 220, 77)).Bold(true)
	styleChosen   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(89, 179, 0))
	styleRule     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(100, 100, 100))
)

// Options configures the terminal front end.
type Options struct {
	Mode  arena.Mode
	Speed arena.SpeedTier
	// Play skips the main menu and starts Mode immediately.
	Play bool
	Bot  bool
	Seed int64
	Mute bool
	// Debug logs every match event.
	Debug bool
}

// App owns the screen and the current match.
type App struct {
	screen tcell.Screen
	opts   Options

	canvas  *arena.Canvas
	match   *arena.Match
	menu    *menu.Graph
	rng     *rand.Rand
	bot     *arena.Bot
	held    [2]heldKeys
	audio   *speakerSink
	logSeen int
	quit    bool
}

// New prepares an App on an initialised screen. Audio failure is not fatal.
func New(screen tcell.Screen, opts Options) *App {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := arena.DefaultConfig(1, 1)
	a := &App{
		screen: screen,
		opts:   opts,
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
		menu: menu.NewGraph(menu.Settings{
			Steering: [2]arena.SteeringMode{cfg.Players[0].Steering, cfg.Players[1].Steering},
			Speed:    opts.Speed,
			Keys:     defaultBindings,
			LastMode: opts.Mode,
		}),
	}
	if opts.Bot {
		a.bot = arena.NewBot(1)
	}
	a.reloadKeys()
	if !opts.Mute {
		sink, err := newSpeakerSink()
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			a.audio = sink
		}
	}
	return a
}

// Run drives the event and tick loop until the player quits.
func (a *App) Run() error {
	defer a.audio.close()
	if a.opts.Play {
		if err := a.startMatch(a.opts.Mode); err != nil {
			return err
		}
		a.menu.Show(menu.PageIngame)
	}

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	tick := time.NewTicker(time.Second / tickRate)
	defer tick.Stop()

	for !a.quit {
		select {
		case ev := <-events:
			a.handleEvent(ev, time.Now())
		case now := <-tick.C:
			a.step(now)
			a.draw()
			a.screen.Show()
		}
	}
	return nil
}

// boardSize returns the canvas that fits the current terminal.
func (a *App) boardSize() (cols, pixRows int, err error) {
	w, h := a.screen.Size()
	if w < minCols || h < minRows {
		return 0, 0, fmt.Errorf("%dx%d, need %dx%d: %w", w, h, minCols, minRows, ErrTooSmall)
	}
	return w, (h - hudRows) * 2, nil
}

func (a *App) startMatch(mode arena.Mode) error {
	cols, pixRows, err := a.boardSize()
	if err != nil {
		return err
	}
	cfg := arena.DefaultConfig(cols*pixelScale, pixRows*pixelScale)
	a.menu.Settings().Apply(&cfg, mode)
	canvas, err := arena.NewCanvas(cfg.Width, cfg.Height, cfg.Width, cfg.Height, arena.BackgroundColor)
	if err != nil {
		return err
	}
	m, err := arena.NewMatch(canvas, cfg, a.rng)
	if err != nil {
		return err
	}
	a.canvas, a.match, a.logSeen = canvas, m, 0
	for i := range a.held {
		a.held[i].reset()
	}
	log.Printf("match started: mode=%s speed=%s board=%dx%d", cfg.Mode, cfg.Speed, cfg.Width, cfg.Height)
	return nil
}

func (a *App) endMatch() {
	if a.match != nil {
		a.match.SetPhase(arena.PhaseMenu)
	}
	a.match, a.canvas = nil, nil
	a.menu.Show(menu.PageMain)
}

func (a *App) reloadKeys() {
	s := a.menu.Settings()
	for i := range a.held {
		a.held[i].bindings = s.Keys[i]
	}
}

func (a *App) handleEvent(ev tcell.Event, now time.Time) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlC {
			a.quit = true
			return
		}
		a.handleKey(e, now)
	}
}

func (a *App) handleKey(e *tcell.EventKey, now time.Time) {
	if a.menu.Current() == menu.PageIngame {
		if e.Key() == tcell.KeyEscape {
			a.endMatch()
			return
		}
		name := keyName(e)
		for i := range a.held {
			a.held[i].press(name, now)
		}
		return
	}

	if a.menu.Capturing() {
		if name := keyName(e); name != "" {
			a.menu.CaptureKey(name)
		}
		return
	}
	switch e.Key() {
	case tcell.KeyUp:
		a.menu.Prev()
		a.audio.play(sfx.CueMenuSelect)
	case tcell.KeyDown:
		a.menu.Next()
		a.audio.play(sfx.CueMenuSelect)
	case tcell.KeyEscape:
		a.menu.Back()
	case tcell.KeyEnter:
		a.audio.play(sfx.CueMenuSelect)
		a.handle(a.menu.Choose())
	}
}

func (a *App) handle(ev menu.Event) {
	switch ev.Action {
	case menu.ActQuit:
		a.quit = true
	case menu.ActStart, menu.ActPlayAgain:
		if err := a.startMatch(ev.Mode); err != nil {
			log.Printf("start match: %v", err)
			a.menu.Show(menu.PageMain)
		}
	case menu.ActApplyBindings:
		a.reloadKeys()
	}
	if a.menu.Current() == menu.PageMain && a.match != nil {
		a.endMatch()
	}
}

// step advances the match one tick. Finished matches keep decaying behind
// the endgame menu.
func (a *App) step(now time.Time) {
	if a.match == nil {
		return
	}
	switch {
	case a.match.Running() && a.menu.Current() == menu.PageIngame:
		var in [2]arena.Steering
		for i := range in {
			in[i] = a.held[i].steering(now)
		}
		if a.bot != nil {
			in[a.bot.Player()] = a.bot.Steer(a.match)
		}
		a.match.Update(in)
		if a.match.Finished() {
			a.menu.Show(menu.PageEndgame)
		}
	case a.match.Finished():
		a.match.Update([2]arena.Steering{})
	}
	a.match.Render()
	a.drainLog()
}

func (a *App) drainLog() {
	ml := a.match.Log()
	for _, e := range ml.Since(a.logSeen) {
		if c, ok := sfx.CueFor(e); ok {
			a.audio.play(c)
		}
		if a.opts.Debug {
			log.Print(e.String())
		}
	}
	a.logSeen = ml.Len()
}

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	if a.match != nil {
		cols, pixRows := a.canvas.Width()/pixelScale, a.canvas.Height()/pixelScale
		drawPixels(a.screen, downsample(a.canvas.Image(), arena.BackgroundColor, pixelScale, cols, pixRows))
		a.drawHUD(w, pixRows/2)
	}
	if a.menu.Current() == menu.PageEndgame {
		a.drawEndgamePrompt(w, h)
	}
	if a.menu.Current() != menu.PageIngame {
		a.drawMenu(w, h)
	}
}

func (a *App) drawHUD(w, row int) {
	scores := a.match.Scores()
	p1, p2 := a.match.Trail(0), a.match.Trail(1)
	drawText(a.screen, 1, row, fmt.Sprintf("%s %d", p2.Name(), scores[1]), tcell.StyleDefault.Foreground(tc(p2.Color())))
	right := fmt.Sprintf("%s %d", p1.Name(), scores[0])
	drawText(a.screen, w-len(right)-1, row, right, tcell.StyleDefault.Foreground(tc(p1.Color())))
	drawCentered(a.screen, w/2, row, "Score", styleRule)
}

func (a *App) drawEndgamePrompt(w, h int) {
	winner := a.match.Winner()
	if winner == nil {
		drawCentered(a.screen, w/2, h/2-2, "Both players crashed", styleText.Bold(true))
		return
	}
	st := tcell.StyleDefault.Foreground(tc(winner.Color())).Bold(true)
	drawCentered(a.screen, w/2, h/2-2, winner.Name()+" Won", st)
}

func (a *App) drawMenu(w, h int) {
	page := a.menu.CurrentPage()
	y := h/2 - len(page.Items)/2
	if page.ID == menu.PageEndgame {
		y = h / 2
	}
	for i, it := range page.Items {
		switch it.Kind {
		case menu.KindSeparator:
			drawCentered(a.screen, w/2, y, "────────────", styleRule)
		case menu.KindLabel:
			drawCentered(a.screen, w/2, y, it.Text, labelStyle(it.Style))
		case menu.KindOption:
			text := a.menu.Text(it)
			if a.menu.Chosen(it) {
				text = "[" + text + "]"
			}
			st := styleText
			if a.menu.Chosen(it) {
				st = styleChosen
			}
			if i == page.Selected() {
				text = "> " + text + " <"
				st = styleSelected
			}
			drawCentered(a.screen, w/2, y, text, st)
		}
		y++
	}
}

func labelStyle(s menu.Style) tcell.Style {
	switch s {
	case menu.StyleBlue:
		return tcell.StyleDefault.Foreground(tc(arena.BlueColor)).Bold(true)
	case menu.StyleYellow:
		return tcell.StyleDefault.Foreground(tc(arena.YellowColor)).Bold(true)
	case menu.StylePrompt:
		return styleText
	default:
		return styleSelected
	}
}
