package frontend

import (
	"math"

	"github.com/reefshot/server/internal/config"
)

// hudRows is the number of terminal rows reserved above the playfield.
const hudRows = 1

// Viewport maps the logical playfield onto terminal cells. One cell covers
// CellWidth x CellHeight playfield units; row 0 belongs to the HUD.
type Viewport struct {
	Cols, Rows int
	CellWidth  float64
	CellHeight float64
}

func NewViewport(cols, rows int, cellWidth, cellHeight float64) Viewport {
	return Viewport{Cols: cols, Rows: rows, CellWidth: cellWidth, CellHeight: cellHeight}
}

// FieldSize returns the playfield size that fills the screen below the HUD.
func (v Viewport) FieldSize() (width, height float64) {
	rows := v.Rows - hudRows
	if rows < 0 {
		rows = 0
	}
	return float64(v.Cols) * v.CellWidth, float64(rows) * v.CellHeight
}

// ToCell returns the cell covering playfield point (x, y). ok is false when
// the point falls outside the visible playfield.
func (v Viewport) ToCell(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor(x / v.CellWidth))
	row = int(math.Floor(y/v.CellHeight)) + hudRows
	ok = col >= 0 && col < v.Cols && row >= hudRows && row < v.Rows
	return col, row, ok
}

// ToFieldX returns the playfield x at the centre of column col.
func (v Viewport) ToFieldX(col int) float64 {
	return (float64(col) + 0.5) * v.CellWidth
}

// Columns returns how many cells a horizontal extent covers, at least one.
func (v Viewport) Columns(width float64) int {
	n := int(math.Round(width / v.CellWidth))
	if n < 1 {
		return 1
	}
	return n
}

// FitPlayfield sizes cfg's playfield to the screen area below the HUD. It
// must run before the controller is built, since the actor's row is derived
// from the playfield height once at creation. It reports false and leaves
// cfg unchanged when the screen has no room for a playfield.
func FitPlayfield(cols, rows int, cfg *config.Config) bool {
	w, h := NewViewport(cols, rows, cfg.Frontend.CellWidth, cfg.Frontend.CellHeight).FieldSize()
	if w <= 0 || h <= 0 {
		return false
	}
	cfg.Playfield.Width, cfg.Playfield.Height = w, h
	return true
}
