// Package session sequences spins for one player: the busy guard, the main spin and the chained
// free-spin phase, each backed by its own engine instance.
package session

import (
	"fmt"
	"slices"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/engine"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/wheel"
)

// Game is the validated configuration shared by every session.
type Game struct {
	File     *rewards.File
	Registry *rewards.Registry
	Layout   *wheel.Layout
}

// NewGame builds the registry and the sector layout and checks that they agree: every reward either
// stream can produce has a sector, and every free-spin reward is a number that can be summed.
func NewGame(f *rewards.File) (*Game, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	reg, err := f.Registry()
	if err != nil {
		return nil, err
	}
	layout, err := wheel.NewLayout(f.Sectors)
	if err != nil {
		return nil, err
	}
	if err := layout.CoversRegistry(reg); err != nil {
		return nil, err
	}
	if f.FreeSpins > 0 {
		var bad []string
		if !slices.Contains(reg.Outcomes(rewards.Main), f.BonusTrigger) {
			bad = append(bad, fmt.Sprintf("bonus_trigger %q is never drawn on the main stream", f.BonusTrigger))
		}
		for _, tok := range reg.Outcomes(rewards.Bonus) {
			if _, ok := tok.Amount(); !ok {
				bad = append(bad, fmt.Sprintf("bonus reward %q is not numeric", tok))
			}
		}
		if len(bad) > 0 {
			return nil, &rewards.ConfigError{Problems: bad}
		}
	}
	return &Game{File: f, Registry: reg, Layout: layout}, nil
}

// NewMachine starts a fresh engine (both cursors at 0) for one session.
func (g *Game) NewMachine(rng engine.RandomSource) (*Machine, error) {
	if rng == nil {
		rng = engine.DefaultSource()
	}
	eng, err := engine.New(g.Registry, rng)
	if err != nil {
		return nil, err
	}
	return &Machine{game: g, eng: eng, rng: rng}, nil
}
