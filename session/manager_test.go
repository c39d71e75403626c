package session

import (
	"testing"
	"time"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/engine"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Lifecycle(t *testing.T) {
	var seed uint64
	mg := NewManager(defaultGame(t), func() engine.RandomSource {
		seed++
		return engine.NewSeededSource(seed)
	})

	id1, m1, err := mg.Create()
	require.NoError(t, err)
	id2, m2, err := mg.Create()
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, mg.Len())

	got, ok := mg.Get(id1)
	require.True(t, ok)
	assert.Same(t, m1, got)

	// sessions do not share cursors
	_, err = m1.Spin()
	require.NoError(t, err)
	assert.Equal(t, 1, m1.Status().Positions[rewards.Main])
	assert.Equal(t, 0, m2.Status().Positions[rewards.Main])

	assert.True(t, mg.Delete(id2))
	assert.False(t, mg.Delete(id2))
	_, ok = mg.Get(id2)
	assert.False(t, ok)
	_, ok = mg.Get(uuid.New())
	assert.False(t, ok)
}

func TestManager_Expire(t *testing.T) {
	mg := NewManager(defaultGame(t), nil)
	idle, _, err := mg.Create()
	require.NoError(t, err)
	busy, m, err := mg.Create()
	require.NoError(t, err)
	_, err = m.Spin()
	require.NoError(t, err)

	n := mg.Expire(time.Now().Add(time.Minute))
	assert.Equal(t, 1, n)
	_, ok := mg.Get(idle)
	assert.False(t, ok)
	_, ok = mg.Get(busy)
	assert.True(t, ok)
}
