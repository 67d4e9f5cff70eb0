package score

const (
	CoinPoints     = 1
	SlowCoinPoints = -5
)

// Tracker holds the score and the number of plain coins left to collect.
// Score has no floor.
type Tracker struct {
	Score     int
	Remaining int

	total int
}

// New creates a tracker for a board holding total plain coins
func New(total int) *Tracker {
	return &Tracker{Remaining: total, total: total}
}

func (t *Tracker) OnCoinCollected() {
	t.Score += CoinPoints
	t.Remaining--
}

// OnSlowCoinCollected costs points and leaves Remaining alone
func (t *Tracker) OnSlowCoinCollected() {
	t.Score += SlowCoinPoints
}

func (t *Tracker) IsWin() bool {
	return t.Remaining == 0
}

// Total is the plain coin count the tracker was created with
func (t *Tracker) Total() int {
	return t.total
}

// Reset zeroes the score and restores the full coin count
func (t *Tracker) Reset() {
	t.Score = 0
	t.Remaining = t.total
}
