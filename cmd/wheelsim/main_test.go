package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/engine"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/round"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_DefaultWheel(t *testing.T) {
	f, err := rewards.Default()
	require.NoError(t, err)
	game, err := session.NewGame(f)
	require.NoError(t, err)

	// 20 rounds = two passes over the main template
	rep, err := simulate(context.Background(), game, engine.NewSeededSource(3), round.Discard{}, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, rep.rounds)
	assert.Equal(t, 6, rep.tallies[rewards.Main].Counts["1000"])
	assert.Equal(t, 4, rep.tallies[rewards.Main].Counts["500"])
	assert.Equal(t, 3*rep.triggered, rep.tallies[rewards.Bonus].Draws)

	var out bytes.Buffer
	require.NoError(t, rep.write(&out, game.Registry))
	assert.Contains(t, out.String(), "main stream (20 draws)")
	assert.Contains(t, out.String(), "rounds: 20")
}

func TestRun_RecordsRounds(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, options{rounds: 5, seed: 9, out: dir}))

	data, err := os.ReadFile(filepath.Join(dir, "wheel_rounds.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	var saved []round.Result
	for _, line := range lines {
		var r round.Result
		require.NoError(t, json.Unmarshal([]byte(line), &r))
		saved = append(saved, r)
	}

	store := round.NewResultsStore(dir)
	same, err := store.ListBySession(context.Background(), saved[0].SessionID)
	require.NoError(t, err)
	assert.Len(t, same, 5)
	assert.Equal(t, "1000", same[0].MainReward)
	assert.Contains(t, out.String(), "rounds: 5")
}

func TestRun_RecordsManyRoundsQuickly(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	start := time.Now()
	require.NoError(t, run(context.Background(), &out, options{rounds: 20000, seed: 9, out: dir}))
	assert.Less(t, time.Since(start), 30*time.Second)

	data, err := os.ReadFile(filepath.Join(dir, "wheel_rounds.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, 20000, bytes.Count(data, []byte("\n")))
	assert.Contains(t, out.String(), "rounds: 20000")
}
