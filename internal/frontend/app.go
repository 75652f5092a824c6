package frontend

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/reefshot/server/internal/config"
	"github.com/reefshot/server/internal/game"
	"go.uber.org/zap"
)

// Game is the controller surface the terminal front-end drives.
type Game interface {
	SetAim(x float64)
	SetFireIntent(held bool)
	SetPlayfieldBounds(width, height float64)
	Pause()
	Resume()
	Restart()
	TogglePause()
	Tick(ts time.Duration)
	Snapshot() game.Snapshot
}

// App owns the terminal: it turns tcell events into controller input and
// drives Tick from a frame ticker.
type App struct {
	screen tcell.Screen
	game   Game
	render *Renderer
	view   Viewport
	frame  time.Duration
	log    *zap.Logger

	// Terminals report no key release, so space toggles autofire.
	keyFire   bool
	mouseFire bool
	fireHeld  bool
}

func NewApp(screen tcell.Screen, g Game, cfg config.FrontendConfig, log *zap.Logger) *App {
	return &App{
		screen: screen,
		game:   g,
		render: NewRenderer(screen, NewHUD(cfg.Locale)),
		view:   NewViewport(0, 0, cfg.CellWidth, cfg.CellHeight),
		frame:  cfg.FrameRate,
		log:    log,
	}
}

// Run processes events and frames until the user quits or ctx is done.
// The caller owns screen initialisation and Fini.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.EnableFocus()
	a.resize(a.screen.Size())

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()
	start := time.Now()
	a.game.Tick(0)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.HandleEvent(ev) {
				a.log.Info("quit requested")
				return nil
			}
		case now := <-ticker.C:
			a.game.Tick(now.Sub(start))
			a.render.Draw(a.game.Snapshot(), a.view)
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.nudge(-2)
		case tcell.KeyRight:
			a.nudge(2)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'p', 'P':
				a.game.TogglePause()
			case 'r', 'R':
				a.game.Restart()
			case ' ':
				a.keyFire = !a.keyFire
				a.syncFire()
			}
		}
	case *tcell.EventMouse:
		col, _ := ev.Position()
		a.game.SetAim(a.view.ToFieldX(col))
		a.mouseFire = ev.Buttons()&tcell.Button1 != 0
		a.syncFire()
	case *tcell.EventResize:
		a.resize(ev.Size())
		a.screen.Sync()
	case *tcell.EventFocus:
		if ev.Focused {
			a.game.Resume()
		} else {
			a.game.Pause()
		}
	}
	return true
}

func (a *App) nudge(cells float64) {
	x := a.game.Snapshot().Actor.X
	a.game.SetAim(x + cells*a.view.CellWidth)
}

func (a *App) syncFire() {
	held := a.keyFire || a.mouseFire
	if held == a.fireHeld {
		return
	}
	a.fireHeld = held
	a.game.SetFireIntent(held)
}

func (a *App) resize(cols, rows int) {
	a.view.Cols, a.view.Rows = cols, rows
	w, h := a.view.FieldSize()
	if w <= 0 || h <= 0 {
		a.log.Warn("terminal too small for the playfield", zap.Int("cols", cols), zap.Int("rows", rows))
		return
	}
	a.log.Debug("playfield resized", zap.Float64("width", w), zap.Float64("height", h))
	a.game.SetPlayfieldBounds(w, h)
}
