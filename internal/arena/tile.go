package arena

// Kind is the tile variant
type Kind uint8

const (
	Empty Kind = iota
	Coin
	SlowCoin
)

// Layout symbols
const (
	SymbolEmpty    = '.'
	SymbolCoin     = 'o'
	SymbolSlowCoin = 'x'
)

func (k Kind) String() string {
	switch k {
	case Coin:
		return "coin"
	case SlowCoin:
		return "slow-coin"
	default:
		return "empty"
	}
}

// Collectible reports whether the kind has collision geometry
func (k Kind) Collectible() bool {
	return k == Coin || k == SlowCoin
}

// kindOf maps a layout symbol to a tile kind. Unknown symbols map to Empty
// and report ok=false.
func kindOf(r rune) (k Kind, ok bool) {
	switch r {
	case SymbolCoin:
		return Coin, true
	case SymbolSlowCoin:
		return SlowCoin, true
	case SymbolEmpty, ' ':
		return Empty, true
	default:
		return Empty, false
	}
}

// Tile is one cell of the arena grid
type Tile struct {
	Kind     Kind
	Row, Col int
	X, Y     float64 // Collision center in pixels (cell origin + half cell)
	Radius   float64
	Visible  bool
}
