// Package engine draws rewards for the Main and Bonus streams by walking each stream's bucket template
// and picking a weighted-random token from the pool named at the cursor.
package engine

import (
	"fmt"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
)

type cursor struct {
	names []string
	pools []rewards.Pool
	pos   int
}

// Engine owns one cursor per stream. It is not safe for concurrent use; callers serialize draws.
type Engine struct {
	rng     RandomSource
	cursors [len(rewards.Streams)]*cursor
}

// New resolves every template position to its pool so that Draw cannot fail later.
// A nil rng selects DefaultSource.
func New(reg *rewards.Registry, rng RandomSource) (*Engine, error) {
	if reg == nil {
		return nil, rewards.NewConfigError("engine: nil registry")
	}
	if rng == nil {
		rng = DefaultSource()
	}
	e := &Engine{rng: rng}
	for _, s := range rewards.Streams {
		names, err := reg.Template(s)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, rewards.NewConfigError("template %s is empty", s)
		}
		c := &cursor{names: names, pools: make([]rewards.Pool, len(names))}
		for i, name := range names {
			pool, err := reg.Pool(name)
			if err != nil {
				return nil, err
			}
			if pool.TotalWeight() <= 0 {
				return nil, rewards.NewConfigError("pool %q has zero total weight", name)
			}
			c.pools[i] = pool
		}
		e.cursors[s] = c
	}
	return e, nil
}

// Draw picks a reward from the pool at the stream's cursor, then advances that cursor,
// wrapping to the start of a fresh template cycle after the last position.
func (e *Engine) Draw(s rewards.Stream) rewards.Token {
	c := e.cursor(s)
	tok := PickWeighted(c.pools[c.pos], e.rng)
	c.pos++
	if c.pos == len(c.pools) {
		c.pos = 0
	}
	return tok
}

// Position is the index of the template slot the next draw on s will use.
func (e *Engine) Position(s rewards.Stream) int {
	return e.cursor(s).pos
}

// NextPool names the pool the next draw on s will use.
func (e *Engine) NextPool(s rewards.Stream) string {
	c := e.cursor(s)
	return c.names[c.pos]
}

// CycleLen is the length of the stream's template.
func (e *Engine) CycleLen(s rewards.Stream) int {
	return len(e.cursor(s).pools)
}

func (e *Engine) cursor(s rewards.Stream) *cursor {
	if s < 0 || int(s) >= len(e.cursors) {
		panic(fmt.Sprintf("engine: unknown stream %d", int(s)))
	}
	return e.cursors[s]
}
