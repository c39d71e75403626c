package engine

import (
	"maps"
	"slices"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
)

// Tally counts drawn tokens.
type Tally struct {
	Draws  int
	Counts map[rewards.Token]int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{Counts: make(map[rewards.Token]int)}
}

// Add records one draw.
func (t *Tally) Add(tok rewards.Token) {
	t.Draws++
	t.Counts[tok]++
}

// Frequency is the observed share of tok.
func (t *Tally) Frequency(tok rewards.Token) float64 {
	if t.Draws == 0 {
		return 0
	}
	return float64(t.Counts[tok]) / float64(t.Draws)
}

// Tokens returns the observed tokens in sorted order.
func (t *Tally) Tokens() []rewards.Token {
	return slices.Sorted(maps.Keys(t.Counts))
}

// Simulate draws n times from stream s and tallies the results. It advances e's cursor.
func Simulate(e *Engine, s rewards.Stream, n int) *Tally {
	t := NewTally()
	for i := 0; i < n; i++ {
		t.Add(e.Draw(s))
	}
	return t
}

// Expected is the long-run probability of each token on stream s: every template slot is used equally
// often, and within a slot each entry has probability weight/total.
func Expected(reg *rewards.Registry, s rewards.Stream) (map[rewards.Token]float64, error) {
	names, err := reg.Template(s)
	if err != nil {
		return nil, err
	}
	out := make(map[rewards.Token]float64)
	slot := 1 / float64(len(names))
	for _, name := range names {
		pool, err := reg.Pool(name)
		if err != nil {
			return nil, err
		}
		total := float64(pool.TotalWeight())
		for _, e := range pool {
			if e.Weight <= 0 {
				continue
			}
			out[e.Reward] += slot * float64(e.Weight) / total
		}
	}
	return out, nil
}
