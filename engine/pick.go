package engine

import "github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"

// Pick walks the pool accumulating weight and returns the first reward whose cumulative weight exceeds x.
// x must lie in [0, pool.TotalWeight()); entries with weight <= 0 are skipped.
func Pick(pool rewards.Pool, x int64) rewards.Token {
	var cum int64
	var last rewards.Token
	for _, e := range pool {
		if e.Weight <= 0 {
			continue
		}
		cum += e.Weight
		last = e.Reward
		if x < cum {
			return e.Reward
		}
	}
	return last
}

// PickWeighted draws one reward with probability weight/total. The pool must have positive total weight;
// the engine guarantees this at construction.
func PickWeighted(pool rewards.Pool, rng RandomSource) rewards.Token {
	return Pick(pool, rng.Int64N(pool.TotalWeight()))
}
