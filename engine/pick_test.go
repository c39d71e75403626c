package engine

import (
	"testing"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
	"github.com/stretchr/testify/assert"
)

var poolC = rewards.Pool{
	{Reward: "250", Weight: 1},
	{Reward: "150", Weight: 1},
	{Reward: "100", Weight: 1},
	{Reward: "50", Weight: 1},
	{Reward: "25", Weight: 1},
	{Reward: "5", Weight: 1},
	{Reward: "FREE SPINS", Weight: 100},
}

func TestPick_PoolC(t *testing.T) {
	assert.Equal(t, int64(106), poolC.TotalWeight())
	assert.Equal(t, rewards.Token("250"), Pick(poolC, 0))
	assert.Equal(t, rewards.Token("150"), Pick(poolC, 1))
	assert.Equal(t, rewards.Token("5"), Pick(poolC, 5))
	assert.Equal(t, rewards.Token("FREE SPINS"), Pick(poolC, 6))
	assert.Equal(t, rewards.Token("FREE SPINS"), Pick(poolC, 105))
}

func TestPick_SkipsZeroWeight(t *testing.T) {
	pool := rewards.Pool{
		{Reward: "A", Weight: 0},
		{Reward: "B", Weight: 2},
		{Reward: "C", Weight: 0},
	}
	assert.Equal(t, rewards.Token("B"), Pick(pool, 0))
	assert.Equal(t, rewards.Token("B"), Pick(pool, 1))
}

func TestPickWeighted_FixedSource(t *testing.T) {
	src := &FixedSource{Values: []int64{105, 0}}
	assert.Equal(t, rewards.Token("FREE SPINS"), PickWeighted(poolC, src))
	assert.Equal(t, rewards.Token("250"), PickWeighted(poolC, src))
	// exhausted sources repeat the last value
	assert.Equal(t, rewards.Token("250"), PickWeighted(poolC, src))
}

func TestPickWeighted_Distribution(t *testing.T) {
	pool := rewards.Pool{
		{Reward: "LOSE", Weight: 70},
		{Reward: "T1", Weight: 20},
		{Reward: "T2", Weight: 10},
	}
	rng := NewSeededSource(42)
	const rounds = 100_000
	count := map[rewards.Token]int{}
	for i := 0; i < rounds; i++ {
		count[PickWeighted(pool, rng)]++
	}
	tol := 0.01
	for _, e := range pool {
		want := float64(e.Weight) / 100
		got := float64(count[e.Reward]) / rounds
		assert.InDelta(t, want, got, tol, "reward %s", e.Reward)
	}
}

func TestPickWeighted_OrderIndependent(t *testing.T) {
	reversed := make(rewards.Pool, len(poolC))
	for i, e := range poolC {
		reversed[len(poolC)-1-i] = e
	}
	const rounds = 100_000
	a, b := NewTally(), NewTally()
	ra, rb := NewSeededSource(7), NewSeededSource(8)
	for i := 0; i < rounds; i++ {
		a.Add(PickWeighted(poolC, ra))
		b.Add(PickWeighted(reversed, rb))
	}
	for _, e := range poolC {
		want := float64(e.Weight) / 106
		assert.InDelta(t, want, a.Frequency(e.Reward), 0.005, "forward %s", e.Reward)
		assert.InDelta(t, want, b.Frequency(e.Reward), 0.005, "reversed %s", e.Reward)
	}
}

func TestDefaultSource_Range(t *testing.T) {
	src := DefaultSource()
	for i := 0; i < 1000; i++ {
		v := src.Int64N(7)
		if v < 0 || v >= 7 {
			t.Fatalf("value %d out of [0,7)", v)
		}
	}
	assert.Equal(t, int64(0), src.Int64N(0))
}
