// Package wheel maps drawn rewards onto the sectors of the visual wheel.
package wheel

import (
	"slices"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/engine"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
)

// Sector is one wheel segment. Angle is the segment's offset in degrees from sector 0.
type Sector struct {
	Index  int           `json:"index"`
	Reward rewards.Token `json:"reward"`
	Angle  float64       `json:"angle"`
}

// Layout is the immutable sector list of a wheel.
type Layout struct {
	sectors []Sector
	byToken map[rewards.Token][]int
}

// NewLayout places tokens clockwise at equal angles. Repeated tokens are allowed; they only change where
// a reward lands, never how often it is drawn.
func NewLayout(tokens []rewards.Token) (*Layout, error) {
	if len(tokens) == 0 {
		return nil, rewards.NewConfigError("wheel has no sectors")
	}
	step := 360 / float64(len(tokens))
	l := &Layout{
		sectors: make([]Sector, len(tokens)),
		byToken: make(map[rewards.Token][]int),
	}
	for i, tok := range tokens {
		l.sectors[i] = Sector{Index: i, Reward: tok, Angle: step * float64(i)}
		l.byToken[tok] = append(l.byToken[tok], i)
	}
	return l, nil
}

// Len is the number of sectors.
func (l *Layout) Len() int { return len(l.sectors) }

// Sectors returns a copy of the sector list.
func (l *Layout) Sectors() []Sector { return slices.Clone(l.sectors) }

// Sector returns the sector at index i.
func (l *Layout) Sector(i int) (Sector, bool) {
	if i < 0 || i >= len(l.sectors) {
		return Sector{}, false
	}
	return l.sectors[i], true
}

// Matches lists the indexes of every sector carrying tok.
func (l *Layout) Matches(tok rewards.Token) []int {
	return slices.Clone(l.byToken[tok])
}

// Resolve picks, uniformly at random, one sector carrying tok. A reward with no sector means the pools and
// the wheel disagree; Covers rejects that at startup, so here it is reported as a ConfigError.
func (l *Layout) Resolve(tok rewards.Token, rng engine.RandomSource) (int, error) {
	idx := l.byToken[tok]
	if len(idx) == 0 {
		return 0, rewards.NewConfigError("reward %q has no sector on the wheel", tok)
	}
	if len(idx) == 1 {
		return idx[0], nil
	}
	return idx[rng.Int64N(int64(len(idx)))], nil
}

// Covers checks that every outcome has at least one sector.
func (l *Layout) Covers(outcomes []rewards.Token) error {
	var missing []string
	for _, tok := range outcomes {
		if len(l.byToken[tok]) == 0 {
			missing = append(missing, "reward "+quote(tok)+" has no sector on the wheel")
		}
	}
	if len(missing) > 0 {
		return &rewards.ConfigError{Problems: missing}
	}
	return nil
}

// CoversRegistry checks both streams of reg against the wheel.
func (l *Layout) CoversRegistry(reg *rewards.Registry) error {
	var all []rewards.Token
	for _, s := range rewards.Streams {
		all = append(all, reg.Outcomes(s)...)
	}
	return l.Covers(all)
}

func quote(tok rewards.Token) string {
	return `"` + string(tok) + `"`
}
