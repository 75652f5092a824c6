package frontend

import (
	"github.com/reefshot/server/internal/game"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HUD formats the status line and overlay banners. Numbers are grouped
// according to the configured locale.
type HUD struct {
	p *message.Printer
}

// NewHUD builds a HUD for a BCP 47 locale tag. Unparseable tags fall back to
// English.
func NewHUD(locale string) *HUD {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &HUD{p: message.NewPrinter(tag)}
}

// Status is the top line: score, countdown and energy.
func (h *HUD) Status(s game.Snapshot) string {
	return h.p.Sprintf("Score %d   Time %s   Energy %.0f%%", s.Score, s.RemainingText, s.Actor.Energy)
}

// Banner is the centred overlay text for the current state, empty while
// Running.
func (h *HUD) Banner(s game.Snapshot) string {
	switch s.State {
	case game.Paused:
		return "PAUSED   p to resume"
	case game.Terminal:
		return h.p.Sprintf("TIME UP   final score %d   r to restart", s.FinalScore)
	}
	return ""
}

// Help lists the key bindings.
func (h *HUD) Help() string {
	return "mouse aim/fire   space autofire   p pause   r restart   q quit"
}
