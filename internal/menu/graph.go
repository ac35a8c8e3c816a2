package menu

import "github.com/Garsondee/trail-arena/internal/arena"

// PageID names a menu page.
type PageID int

const (
	PageMain PageID = iota
	PagePlay
	PageSettings
	PageKeyBindings
	PagePressKey
	PageSelectSpeed
	PageIngame
	PageEndgame
	pageCount

	// NoPage as an option target keeps the current page.
	NoPage PageID = -1
)

func (p PageID) String() string {
	switch p {
	case PageMain:
		return "main"
	case PagePlay:
		return "play"
	case PageSettings:
		return "settings"
	case PageKeyBindings:
		return "key_bindings"
	case PagePressKey:
		return "press_key"
	case PageSelectSpeed:
		return "select_speed"
	case PageIngame:
		return "ingame"
	case PageEndgame:
		return "endgame"
	default:
		return "none"
	}
}

// Page is an ordered list of items with a cursor over the options.
type Page struct {
	ID       PageID
	Items    []Item
	selected int // index into Items; -1 when the page has no options
}

// Selected returns the index of the highlighted item, or -1.
func (p *Page) Selected() int { return p.selected }

func (p *Page) selectFirst() {
	p.selected = -1
	for i, it := range p.Items {
		if it.Selectable() {
			p.selected = i
			return
		}
	}
}

func (p *Page) step(dir int) {
	if p.selected < 0 {
		return
	}
	n := len(p.Items)
	for i, idx := 1, p.selected; i <= n; i++ {
		idx = (idx + dir + n) % n
		if p.Items[idx].Selectable() {
			p.selected = idx
			return
		}
	}
}

// Graph is the full menu: every page, the current one, and the settings the
// pages edit. It replaces a global page table; front ends own one value.
type Graph struct {
	pages    [pageCount]*Page
	current  PageID
	settings Settings

	editPlayer int
	pending    Bindings
	capturing  Control
}

// NewGraph builds all pages on top of the given settings and shows the main
// menu.
func NewGraph(s Settings) *Graph {
	g := &Graph{settings: s, current: PageMain}
	g.pages[PageMain] = &Page{ID: PageMain, Items: []Item{
		Label("Trail", StyleYellow),
		Label("Arena", StyleBlue),
		Option("Play", ActNone, PagePlay),
		Option("Settings", ActNone, PageSettings),
		Option("Quit", ActQuit, NoPage),
	}}
	g.pages[PagePlay] = &Page{ID: PagePlay, Items: []Item{
		Label("Play", StyleHeading),
		modeOption("Standard", arena.ModeEatToGrow),
		modeOption("Infinite", arena.ModeInfiniteSnake),
		modeOption("Starve", arena.ModeEatToSurvive),
		Option("Return to main menu", ActNone, PageMain),
	}}
	g.pages[PageSettings] = &Page{ID: PageSettings, Items: []Item{
		Label("Controls", StyleHeading),
		Label("Blue player", StyleBlue),
		steeringOption(0, arena.SteerAbsolute),
		steeringOption(0, arena.SteerRelative),
		bindingsOption(0),
		Separator(),
		Label("Yellow player", StyleYellow),
		steeringOption(1, arena.SteerAbsolute),
		steeringOption(1, arena.SteerRelative),
		bindingsOption(1),
		Separator(),
		Option("Set speed", ActNone, PageSelectSpeed),
		Option("Return to menu", ActNone, PageMain),
	}}
	kb := []Item{Label("Key bindings", StyleHeading)}
	for c := Control(0); c < controlCount; c++ {
		it := Option(c.String(), ActCaptureKey, PagePressKey)
		it.Arg = int(c)
		kb = append(kb, it)
	}
	kb = append(kb,
		Option("Apply", ActApplyBindings, PageSettings),
		Option("Go Back", ActDiscardBindings, PageSettings),
	)
	g.pages[PageKeyBindings] = &Page{ID: PageKeyBindings, Items: kb}
	g.pages[PagePressKey] = &Page{ID: PagePressKey, Items: []Item{
		Label("Press a key", StylePrompt),
	}}
	g.pages[PageSelectSpeed] = &Page{ID: PageSelectSpeed, Items: []Item{
		Label("Select speed", StyleHeading),
		speedOption(arena.SpeedSlow),
		speedOption(arena.SpeedMedium),
		speedOption(arena.SpeedFast),
		Option("Go Back", ActNone, PageSettings),
	}}
	g.pages[PageIngame] = &Page{ID: PageIngame}
	g.pages[PageEndgame] = &Page{ID: PageEndgame, Items: []Item{
		Option("Play Again", ActPlayAgain, PageIngame),
		Option("Return to main menu", ActNone, PageMain),
	}}
	for _, p := range g.pages {
		p.selectFirst()
	}
	return g
}

func modeOption(text string, m arena.Mode) Item {
	it := Option(text, ActStart, PageIngame)
	it.Arg = int(m)
	return it
}

func steeringOption(player int, m arena.SteeringMode) Item {
	text := "Absolute"
	if m == arena.SteerRelative {
		text = "Relative"
	}
	it := Option(text, ActSetSteering, NoPage)
	it.Group = "steering"
	it.Player = player
	it.Arg = int(m)
	return it
}

func bindingsOption(player int) Item {
	text := "P1 Key Bindings"
	if player == 1 {
		text = "P2 Key Bindings"
	}
	it := Option(text, ActEditBindings, PageKeyBindings)
	it.Player = player
	return it
}

func speedOption(s arena.SpeedTier) Item {
	text := map[arena.SpeedTier]string{arena.SpeedSlow: "Slow", arena.SpeedMedium: "Medium", arena.SpeedFast: "Fast"}[s]
	it := Option(text, ActSetSpeed, NoPage)
	it.Group = "speed"
	it.Arg = int(s)
	return it
}

func (g *Graph) Current() PageID       { return g.current }
func (g *Graph) CurrentPage() *Page    { return g.pages[g.current] }
func (g *Graph) Page(id PageID) *Page  { return g.pages[id] }
func (g *Graph) Settings() Settings    { return g.settings }
func (g *Graph) Capturing() bool       { return g.current == PagePressKey }
func (g *Graph) EditingPlayer() int    { return g.editPlayer }
func (g *Graph) PendingKeys() Bindings { return g.pending }

// Show switches pages without choosing anything, e.g. to the endgame page
// when a match finishes. The page being left has its cursor reset.
func (g *Graph) Show(id PageID) {
	if id < 0 || id >= pageCount {
		return
	}
	g.pages[g.current].selectFirst()
	g.current = id
}

func (g *Graph) Next() { g.pages[g.current].step(1) }
func (g *Graph) Prev() { g.pages[g.current].step(-1) }

// SelectedItem returns the highlighted option on the current page.
func (g *Graph) SelectedItem() (Item, bool) {
	p := g.pages[g.current]
	if p.selected < 0 {
		return Item{}, false
	}
	return p.Items[p.selected], true
}

// Choose activates the highlighted option: radio groups and pending key
// bindings are updated here, then the graph moves to the option's target.
func (g *Graph) Choose() Event {
	it, ok := g.SelectedItem()
	if !ok {
		return Event{}
	}
	ev := Event{Action: it.Action, Player: it.Player}
	switch it.Action {
	case ActStart:
		g.settings.LastMode = arena.Mode(it.Arg)
		ev.Mode = g.settings.LastMode
	case ActPlayAgain:
		ev.Mode = g.settings.LastMode
	case ActSetSteering:
		g.settings.Steering[it.Player] = arena.SteeringMode(it.Arg)
	case ActSetSpeed:
		g.settings.Speed = arena.SpeedTier(it.Arg)
	case ActEditBindings:
		g.editPlayer = it.Player
		g.pending = g.settings.Keys[it.Player]
	case ActCaptureKey:
		g.capturing = Control(it.Arg)
	case ActApplyBindings:
		g.settings.Keys[g.editPlayer] = g.pending
		ev.Player = g.editPlayer
	}
	if it.Target != NoPage {
		g.Show(it.Target)
	}
	return ev
}

// CaptureKey records name for the control being rebound and returns to the
// key bindings page. It reports false when no key is being captured.
func (g *Graph) CaptureKey(name string) bool {
	if !g.Capturing() {
		return false
	}
	g.pending[g.capturing] = name
	g.current = PageKeyBindings
	return true
}

// Back leaves a sub-page for its parent, discarding pending key bindings.
// It reports false on pages without a parent.
func (g *Graph) Back() bool {
	parent := map[PageID]PageID{
		PagePlay:        PageMain,
		PageSettings:    PageMain,
		PageKeyBindings: PageSettings,
		PageSelectSpeed: PageSettings,
		PagePressKey:    PageKeyBindings,
	}
	to, ok := parent[g.current]
	if !ok {
		return false
	}
	if g.current == PagePressKey {
		g.current = to
		return true
	}
	g.Show(to)
	return true
}

// DisableQuit removes the Quit option, for kiosk setups with no way out.
func (g *Graph) DisableQuit() {
	p := g.pages[PageMain]
	items := p.Items[:0]
	for _, it := range p.Items {
		if it.Action != ActQuit {
			items = append(items, it)
		}
	}
	p.Items = items
	p.selectFirst()
}

// Chosen reports whether a radio option matches the current settings.
func (g *Graph) Chosen(it Item) bool {
	switch it.Action {
	case ActSetSteering:
		return g.settings.Steering[it.Player] == arena.SteeringMode(it.Arg)
	case ActSetSpeed:
		return g.settings.Speed == arena.SpeedTier(it.Arg)
	}
	return false
}

// Text is the string to display for an item. Key binding options show the
// pending key.
func (g *Graph) Text(it Item) string {
	if it.Action == ActCaptureKey {
		key := g.pending[it.Arg]
		if key == "" {
			key = "unbound"
		}
		return it.Text + ": " + key
	}
	return it.Text
}
