package arena

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrEmptyLayout = errors.New("arena: empty layout")
	ErrBadSurface  = errors.New("arena: surface size must be positive")
)

// Arena is the fixed tile grid. Geometry is immutable after Build; only tile
// visibility changes.
type Arena struct {
	Cols, Rows                  int
	CellWidth, CellHeight       float64
	SurfaceWidth, SurfaceHeight float64

	// Unknown counts layout symbols that were not recognised and became Empty
	Unknown int

	tiles     []Tile // Row-major
	coinCount int
}

// Build creates an arena from layout rows. The grid is as wide as the longest
// row; shorter rows are padded with Empty tiles.
func Build(layout []string, surfaceW, surfaceH, coinRadius float64) (*Arena, error) {
	if len(layout) == 0 {
		return nil, ErrEmptyLayout
	}
	if surfaceW <= 0 || surfaceH <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrBadSurface, surfaceW, surfaceH)
	}

	cols := 0
	for _, row := range layout {
		if n := utf8.RuneCountInString(row); n > cols {
			cols = n
		}
	}
	if cols == 0 {
		return nil, ErrEmptyLayout
	}

	a := &Arena{
		Cols:          cols,
		Rows:          len(layout),
		SurfaceWidth:  surfaceW,
		SurfaceHeight: surfaceH,
		CellWidth:     surfaceW / float64(cols),
		CellHeight:    surfaceH / float64(len(layout)),
		tiles:         make([]Tile, 0, cols*len(layout)),
	}

	for r, row := range layout {
		runes := []rune(row)
		for c := 0; c < cols; c++ {
			kind := Empty
			if c < len(runes) {
				var ok bool
				kind, ok = kindOf(runes[c])
				if !ok {
					a.Unknown++
				}
			}
			t := Tile{
				Kind: kind,
				Row:  r,
				Col:  c,
				X:    float64(c)*a.CellWidth + a.CellWidth/2,
				Y:    float64(r)*a.CellHeight + a.CellHeight/2,
			}
			if kind.Collectible() {
				t.Radius = coinRadius
				t.Visible = true
			}
			if kind == Coin {
				a.coinCount++
			}
			a.tiles = append(a.tiles, t)
		}
	}

	return a, nil
}

// Tiles returns the grid in row-major order. Callers may flip Visible but
// must not change geometry.
func (a *Arena) Tiles() []Tile {
	return a.tiles
}

// At returns the tile at row, col or nil if out of range
func (a *Arena) At(row, col int) *Tile {
	if row < 0 || row >= a.Rows || col < 0 || col >= a.Cols {
		return nil
	}
	return &a.tiles[row*a.Cols+col]
}

// CoinCount is the number of plain coins in the layout, visible or not
func (a *Arena) CoinCount() int {
	return a.coinCount
}

// VisibleCoins counts plain coins still on the board
func (a *Arena) VisibleCoins() int {
	n := 0
	for i := range a.tiles {
		if a.tiles[i].Kind == Coin && a.tiles[i].Visible {
			n++
		}
	}
	return n
}

// Reset makes every collectible tile visible again
func (a *Arena) Reset() {
	for i := range a.tiles {
		a.tiles[i].Visible = a.tiles[i].Kind.Collectible()
	}
}
