package game

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/Garsondee/trail-arena/internal/arena"
	"github.com/Garsondee/trail-arena/internal/menu"
	"github.com/Garsondee/trail-arena/internal/sfx"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// statusTicks is how long a status line (e.g. "summary copied") stays up.
const statusTicks = 120

// Options configures the desktop front end.
type Options struct {
	Width, Height int
	// Bot lets arena.Bot drive the yellow player.
	Bot bool
	// Seed fixes the RNG; zero seeds from the clock.
	Seed int64
	// Mute skips audio context creation.
	Mute bool
	// DisableQuit hides the Quit option for kiosk setups.
	DisableQuit bool
	// Debug logs every match event.
	Debug bool
}

// Game implements ebiten.Game for the arena.
type Game struct {
	opts Options

	canvas   *arena.Canvas
	match    *arena.Match
	menu     *menu.Graph
	rng      *rand.Rand
	bot      *arena.Bot
	keys     [2]keySet
	arenaImg *ebiten.Image

	fonts   *fonts
	feed    *Feed
	audio   *audioSink
	logSeen int

	status      string
	statusUntil int
	frame       int
}

// New builds the window-independent state. The caller runs it with
// ebiten.RunGame.
func New(opts Options) (*Game, error) {
	cfg := arenaConfig(opts.Width, opts.Height)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	canvas, err := arena.NewCanvas(cfg.Width, cfg.Height, cfg.PlayWidth, cfg.PlayHeight, arena.BackgroundColor)
	if err != nil {
		return nil, err
	}
	f, err := loadFonts(opts.Height)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		opts:     opts,
		canvas:   canvas,
		menu:     menu.NewGraph(defaultSettings(cfg)),
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
		arenaImg: ebiten.NewImage(cfg.Width, cfg.Height),
		fonts:    f,
		feed:     NewFeed(feedCapacity),
	}
	if opts.Bot {
		g.bot = arena.NewBot(1)
	}
	if opts.DisableQuit {
		g.menu.DisableQuit()
	}
	g.reloadKeys()
	if !opts.Mute {
		g.audio = newAudioSink(sfx.SampleRate)
	}
	return g, nil
}

// arenaConfig lays the arena over the whole window with the wall marker
// just above the score band, as the HUD divider.
func arenaConfig(w, h int) arena.Config {
	cfg := arena.DefaultConfig(w, h)
	top := h * 9 / 10
	cfg.MarkerBand = image.Rect(0, top, w, top+markerThickness(h))
	return cfg
}

func markerThickness(h int) int {
	if t := h / 90; t > 2 {
		return t
	}
	return 2
}

func defaultSettings(cfg arena.Config) menu.Settings {
	return menu.Settings{
		Steering: [2]arena.SteeringMode{cfg.Players[0].Steering, cfg.Players[1].Steering},
		Speed:    cfg.Speed,
		Keys:     [2]menu.Bindings{defaultBindings[0], defaultBindings[1]},
		LastMode: cfg.Mode,
	}
}

func (g *Game) Update() error {
	g.frame++
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	switch g.menu.Current() {
	case menu.PageIngame:
		g.updateIngame()
	default:
		if err := g.updateMenu(); err != nil {
			return err
		}
		if g.match != nil && g.match.Finished() {
			g.match.Update([2]arena.Steering{})
		}
	}

	if g.match != nil {
		g.match.Render()
		g.drainLog()
	}
	return nil
}

func (g *Game) updateIngame() {
	if g.match == nil {
		g.menu.Show(menu.PageMain)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.endMatch()
		return
	}
	var in [2]arena.Steering
	for i := range in {
		in[i] = g.keys[i].steering()
	}
	if g.bot != nil {
		in[g.bot.Player()] = g.bot.Steer(g.match)
	}
	g.match.Update(in)
	if g.match.Finished() {
		g.menu.Show(menu.PageEndgame)
	}
}

func (g *Game) updateMenu() error {
	if g.menu.Capturing() {
		if keys := inpututil.AppendJustPressedKeys(nil); len(keys) > 0 {
			g.menu.CaptureKey(keys[0].String())
		}
		return nil
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.menu.Prev()
		g.audio.play(sfx.CueMenuSelect)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.menu.Next()
		g.audio.play(sfx.CueMenuSelect)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.menu.Back()
	case inpututil.IsKeyJustPressed(ebiten.KeyC) && g.menu.Current() == menu.PageEndgame:
		g.copySummary()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.audio.play(sfx.CueMenuSelect)
		return g.handle(g.menu.Choose())
	}
	return nil
}

func (g *Game) handle(ev menu.Event) error {
	switch ev.Action {
	case menu.ActQuit:
		return ebiten.Termination
	case menu.ActStart, menu.ActPlayAgain:
		if err := g.startMatch(ev.Mode); err != nil {
			log.Printf("start match: %v", err)
			g.menu.Show(menu.PageMain)
		}
	case menu.ActApplyBindings:
		g.reloadKeys()
	}
	if g.menu.Current() == menu.PageMain && g.match != nil {
		g.endMatch()
	}
	return nil
}

func (g *Game) startMatch(mode arena.Mode) error {
	cfg := arenaConfig(g.opts.Width, g.opts.Height)
	g.menu.Settings().Apply(&cfg, mode)
	m, err := arena.NewMatch(g.canvas, cfg, g.rng)
	if err != nil {
		return err
	}
	g.match = m
	g.logSeen = 0
	g.feed.Reset()
	log.Printf("match started: mode=%s speed=%s", cfg.Mode, cfg.Speed)
	return nil
}

func (g *Game) endMatch() {
	if g.match != nil {
		g.match.SetPhase(arena.PhaseMenu)
	}
	g.match = nil
	g.canvas.Clear()
	g.menu.Show(menu.PageMain)
}

// drainLog routes new match events to the feed, the speaker and the log.
func (g *Game) drainLog() {
	ml := g.match.Log()
	for _, e := range ml.Since(g.logSeen) {
		if c, ok := sfx.CueFor(e); ok {
			g.audio.play(c)
		}
		if e.Category != arena.CatPickup || e.Key != arena.KeySpawn {
			g.feed.Add(e.Tick, e.Player, g.playerColor(e.Player), e.Category+" "+e.Key+" "+e.Value)
		}
		if g.opts.Debug {
			log.Print(e.String())
		}
		if e.Key == arena.KeyFinished {
			log.Printf("match finished: %s", e.Value)
		}
	}
	g.logSeen = ml.Len()
}

func (g *Game) playerColor(name string) color.RGBA {
	for i := 0; i < 2; i++ {
		if t := g.match.Trail(i); t.Name() == name {
			return t.Color()
		}
	}
	return color.RGBA{R: 200, G: 200, B: 200, A: 255}
}

func (g *Game) copySummary() {
	if g.match == nil {
		return
	}
	if err := clipboard.WriteAll(arena.Summary(g.match, 12)); err != nil {
		log.Printf("clipboard: %v", err)
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("match summary copied")
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusUntil = g.frame + statusTicks
}

func (g *Game) reloadKeys() {
	s := g.menu.Settings()
	for i := range g.keys {
		ks, err := resolveKeys(s.Keys[i])
		if err != nil {
			log.Printf("player %d bindings: %v", i+1, err)
		}
		g.keys[i] = ks
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(arena.BackgroundColor)
	if g.match != nil {
		g.arenaImg.WritePixels(g.canvas.Image().Pix)
		screen.DrawImage(g.arenaImg, nil)
		g.drawHUD(screen)
		g.feed.Draw(screen, 8, 8, feedVisible)
	}
	if g.menu.Current() == menu.PageEndgame {
		g.drawEndgamePrompt(screen)
	}
	if g.menu.Current() != menu.PageIngame {
		g.drawMenu(screen)
	}
	if g.status != "" && g.frame < g.statusUntil {
		drawCentered(screen, g.status, g.fonts.small, float64(g.opts.Width)/2, float64(g.opts.Height)*0.8, colorText, colorShadow)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}

// Run opens the window and blocks until it closes. Choosing Quit returns
// ebiten.Termination from Update, which RunGame reports as nil.
func Run(g *Game, title string, fullscreen bool) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetFullscreen(fullscreen)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}
