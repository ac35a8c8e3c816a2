package game

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"github.com/Garsondee/trail-arena/internal/arena"
	"github.com/Garsondee/trail-arena/internal/menu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	colorText     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorShadow   = color.RGBA{A: 255}
	colorSelected = color.RGBA{R: 255, G: 220, B: 77, A: 255}
	colorSelEdge  = color.RGBA{R: 55, G: 111, B: 158, A: 255}
	colorChosen   = color.RGBA{R: 89, G: 179, B: 0, A: 255}
	colorRule     = color.RGBA{R: 100, G: 100, B: 100, A: 255}
)

// fonts holds the faces used by menus and the HUD, sized from the window
// height so a 1000x900 window matches the classic layout.
type fonts struct {
	title *text.GoTextFace
	item  *text.GoTextFace
	small *text.GoTextFace
}

func loadFonts(height int) (*fonts, error) {
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, err
	}
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	h := float64(height)
	return &fonts{
		title: &text.GoTextFace{Source: bold, Size: h / 13},
		item:  &text.GoTextFace{Source: bold, Size: h / 30},
		small: &text.GoTextFace{Source: regular, Size: h / 45},
	}, nil
}

// drawCentered draws s centred on (x, y) with a one-pixel outline.
func drawCentered(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, fill, edge color.Color) {
	drawBordered(dst, s, face, x, y, fill, edge, 2)
}

func drawBordered(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, fill, edge color.Color, thickness float64) {
	draw := func(dx, dy float64, c color.Color) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+dx, y+dy)
		op.ColorScale.ScaleWithColor(c)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(dst, s, face, op)
	}
	for _, d := range [][2]float64{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}, {0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		draw(d[0]*thickness, d[1]*thickness, edge)
	}
	draw(0, 0, fill)
}

func labelColors(s menu.Style) (fill, edge color.Color) {
	switch s {
	case menu.StyleBlue:
		return arena.BlueColor, arena.YellowColor
	case menu.StyleYellow:
		return arena.YellowColor, arena.BlueColor
	case menu.StylePrompt:
		return color.White, colorShadow
	default:
		return colorSelected, colorSelEdge
	}
}

// drawMenu lays the current page out as a centred column.
func (g *Game) drawMenu(screen *ebiten.Image) {
	page := g.menu.CurrentPage()
	if len(page.Items) == 0 {
		return
	}
	w, h := float64(g.opts.Width), float64(g.opts.Height)
	lineH := h / 14
	y := h/2 - lineH*float64(len(page.Items)-1)/2
	if page.ID == menu.PageEndgame {
		y = h/2 + lineH
	}
	for i, it := range page.Items {
		switch it.Kind {
		case menu.KindSeparator:
			vector.StrokeLine(screen, float32(w*0.25), float32(y), float32(w*0.75), float32(y), 2, colorRule, false)
		case menu.KindLabel:
			face := g.fonts.item
			if it.Style == menu.StyleTitle || it.Style == menu.StyleHeading || page.ID == menu.PageMain {
				face = g.fonts.title
			}
			fill, edge := labelColors(it.Style)
			drawBordered(screen, it.Text, face, w/2, y, fill, edge, 2)
		case menu.KindOption:
			label := g.menu.Text(it)
			if g.menu.Chosen(it) {
				tw, th := text.Measure(label, g.fonts.item, 0)
				vector.FillRect(screen, float32(w/2-tw/2-8), float32(y-th/2-2), float32(tw+16), float32(th+4), colorChosen, false)
			}
			if i == page.Selected() {
				drawBordered(screen, label, g.fonts.item, w/2, y, colorSelected, colorSelEdge, 2)
			} else {
				drawBordered(screen, label, g.fonts.item, w/2, y, color.White, colorShadow, 2)
			}
		}
		y += lineH
	}
	if page.ID == menu.PageEndgame {
		drawCentered(screen, "C copies the match summary", g.fonts.small, w/2, y, colorText, colorShadow)
	}
}

// drawHUD writes the scores under the wall marker: player 2 on the left,
// player 1 on the right. Trails stay visible underneath.
func (g *Game) drawHUD(screen *ebiten.Image) {
	w, h := float64(g.opts.Width), float64(g.opts.Height)
	band := g.match.Config().MarkerBand
	top := float64(band.Max.Y)

	y := top + (h-top)/2
	scores := g.match.Scores()
	drawCentered(screen, "Score", g.fonts.item, w/2, y, color.White, colorRule)
	p1, p2 := g.match.Trail(0), g.match.Trail(1)
	drawBordered(screen, strconv.Itoa(scores[1]), g.fonts.item, w/10, y, p2.Color(), p1.Color(), 2)
	drawBordered(screen, strconv.Itoa(scores[0]), g.fonts.item, w*9/10, y, p1.Color(), p2.Color(), 2)
	if g.match.Mode() == arena.ModeEatToSurvive {
		drawCentered(screen, fmt.Sprintf("%.0f", p2.TargetLength()), g.fonts.small, w*3/10, y, colorText, colorShadow)
		drawCentered(screen, fmt.Sprintf("%.0f", p1.TargetLength()), g.fonts.small, w*7/10, y, colorText, colorShadow)
	}
}

// drawEndgamePrompt announces the winner in their colour, outlined in the
// loser's.
func (g *Game) drawEndgamePrompt(screen *ebiten.Image) {
	if g.match == nil {
		return
	}
	x, y := float64(g.opts.Width)/2, float64(g.opts.Height)/2
	winner, loser := g.match.Winner(), g.match.Loser()
	if winner == nil {
		drawBordered(screen, "Both players crashed", g.fonts.title, x, y, color.White, colorShadow, 3)
		return
	}
	drawBordered(screen, winner.Name()+" Won", g.fonts.title, x, y, winner.Color(), loser.Color(), 3)
}
