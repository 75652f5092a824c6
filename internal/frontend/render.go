package frontend

import (
	"github.com/gdamore/tcell/v2"
	"github.com/reefshot/server/internal/game"
	"github.com/reefshot/server/internal/world"
)

var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy).Bold(true)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
	actorStyle  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	barrelStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	shotStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	trailStyle  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	waterStyle  = tcell.StyleDefault.Background(tcell.ColorBlack)
)

// Renderer draws snapshots onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	hud    *HUD
	styles map[string]tcell.Style
}

func NewRenderer(screen tcell.Screen, hud *HUD) *Renderer {
	return &Renderer{screen: screen, hud: hud, styles: make(map[string]tcell.Style)}
}

// Draw renders one frame and shows it.
func (r *Renderer) Draw(s game.Snapshot, v Viewport) {
	r.screen.SetStyle(waterStyle)
	r.screen.Clear()

	for _, p := range s.Projectiles {
		for _, pt := range p.Trail {
			r.put(v, pt.X, pt.Y, '.', trailStyle)
		}
		r.put(v, p.X, p.Y, '|', shotStyle)
	}
	for _, c := range s.Creatures {
		r.drawCreature(v, c)
	}
	r.drawActor(v, s.Actor)

	r.fillRow(0, v.Cols, hudStyle)
	r.text(0, 0, r.hud.Status(s), hudStyle)
	if banner := r.hud.Banner(s); banner != "" {
		row := v.Rows / 2
		r.text((v.Cols-len(banner))/2, row, banner, bannerStyle)
		help := r.hud.Help()
		r.text((v.Cols-len(help))/2, row+1, help, hudStyle)
	}
	r.screen.Show()
}

func (r *Renderer) drawCreature(v Viewport, c game.CreatureView) {
	st := r.style(c.Tag)
	y := c.Y + c.Bob
	for _, seg := range c.Segments {
		r.put(v, seg.X, seg.Y, 'o', st)
	}
	cols := v.Columns(c.Width)
	left := c.X - float64(cols-1)*v.CellWidth/2
	body := glyph(c.Archetype, c.Dir)
	for i := 0; i < cols; i++ {
		ch := body
		if i == 0 && c.Dir == world.Left || i == cols-1 && c.Dir == world.Right {
			ch = head(c.Archetype, c.Dir)
		}
		if c.Archetype == world.Jellyfish && c.Pulse < 0 {
			ch = '.' // contracted bell
		}
		r.put(v, left+float64(i)*v.CellWidth, y, ch, st)
	}
}

func (r *Renderer) drawActor(v Viewport, a game.ActorView) {
	cols := v.Columns(a.Width)
	left := a.X - float64(cols-1)*v.CellWidth/2
	top := a.Y - a.Height/2 + a.Recoil
	for i := 0; i < cols; i++ {
		x := left + float64(i)*v.CellWidth
		for y := top + v.CellHeight; y <= a.Y+a.Height/2; y += v.CellHeight {
			r.put(v, x, y, '#', actorStyle)
		}
	}
	r.put(v, a.X, top, '^', barrelStyle)
}

func (r *Renderer) put(v Viewport, x, y float64, ch rune, st tcell.Style) {
	col, row, ok := v.ToCell(x, y)
	if !ok {
		return
	}
	r.screen.SetContent(col, row, ch, nil, st)
}

func (r *Renderer) text(col, row int, s string, st tcell.Style) {
	if col < 0 {
		col = 0
	}
	for _, ch := range s {
		r.screen.SetContent(col, row, ch, nil, st)
		col++
	}
}

func (r *Renderer) fillRow(row, cols int, st tcell.Style) {
	for col := 0; col < cols; col++ {
		r.screen.SetContent(col, row, ' ', nil, st)
	}
}

// style caches the style for a creature colour tag such as "#FF6B6B".
func (r *Renderer) style(tag string) tcell.Style {
	if st, ok := r.styles[tag]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(tcell.GetColor(tag)).Background(tcell.ColorBlack)
	r.styles[tag] = st
	return st
}

func glyph(a world.Archetype, dir world.Direction) rune {
	switch a {
	case world.Jellyfish:
		return 'm'
	case world.Turtle:
		return 'O'
	case world.Shark:
		return '='
	case world.Snake:
		return 's'
	}
	if dir == world.Left {
		return '<'
	}
	return '>'
}

func head(a world.Archetype, dir world.Direction) rune {
	switch a {
	case world.Jellyfish:
		return 'M'
	case world.Turtle:
		return '@'
	case world.Shark:
		if dir == world.Left {
			return '<'
		}
		return '>'
	case world.Snake:
		return 'S'
	}
	return 'o'
}
