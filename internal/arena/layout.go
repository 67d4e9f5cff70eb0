package arena

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseOct   = 3
	noiseScale = 0.37

	// Share of generated collectibles that become slow coins
	slowShare = 0.08
)

var builtin = map[string][]string{
	// Staggered coin rows inside an empty border, with two slow coins
	"classic": {
		"...........",
		".o.o.o.o.o.",
		"..ox.o.o...",
		".o.o.o.o.o.",
		"...o.o.o.o.",
		".o.o.o.o.o.",
		"...o.o.x.o.",
		".o.o.o.o.o.",
		"...........",
		"...........",
	},
	"diamond": {
		"...........",
		".....o.....",
		"....ooo....",
		"...oo.oo...",
		"..oo.x.oo..",
		"...oo.oo...",
		"....ooo....",
		".....o.....",
		"...........",
		"...........",
	},
}

// Names lists the built-in layouts plus the generated one
func Names() []string {
	names := make([]string, 0, len(builtin)+1)
	for name := range builtin {
		names = append(names, name)
	}
	names = append(names, "noise")
	sort.Strings(names)
	return names
}

// Builtin returns a copy of a named layout
func Builtin(name string) ([]string, error) {
	rows, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("arena: unknown layout %q (have %s)", name, strings.Join(Names(), ", "))
	}
	out := make([]string, len(rows))
	copy(out, rows)
	return out, nil
}

// Generate produces a layout from 2D perlin noise. The highest-noise cells
// (density share of the board, top row excluded) become collectibles and the
// highest of those become slow coins. At least one plain coin is always placed.
func Generate(cols, rows int, seed int64, density float64) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if density <= 0 {
		density = 0.3
	}
	if density > 1 {
		density = 1
	}

	type cell struct {
		r, c int
		v    float64
	}

	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOct, seed)
	cells := make([]cell, 0, cols*(rows-1))
	for r := 1; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := p.Noise2D(float64(c)*noiseScale, float64(r)*noiseScale)
			cells = append(cells, cell{r: r, c: c, v: v})
		}
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(SymbolEmpty), cols))
	}
	if len(cells) == 0 {
		// Single-row board: the only row is the start row. Keep the coin
		// out of the middle column the ball spawns in.
		grid[0][0] = SymbolCoin
		return join(grid)
	}

	sort.SliceStable(cells, func(i, j int) bool { return cells[i].v > cells[j].v })

	n := int(float64(len(cells)) * density)
	if n < 1 {
		n = 1
	}
	slow := int(float64(n) * slowShare)
	if slow >= n {
		slow = n - 1
	}

	for i := 0; i < n; i++ {
		sym := SymbolCoin
		if i < slow {
			sym = SymbolSlowCoin
		}
		grid[cells[i].r][cells[i].c] = sym
	}

	return join(grid)
}

func join(grid [][]rune) []string {
	out := make([]string, len(grid))
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}
