package round

import (
	"context"
	"testing"
	"time"

	rgs "github.com/Ashenafi-pixel/gamecrafter-prize-wheel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPGStore starts a throwaway Postgres and applies the embedded migrations.
func setupPGStore(t *testing.T) *PGStore {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container test skipped in -short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("wheel"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := rgs.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, rgs.Migrate(ctx, db))
	// applying twice is harmless
	require.NoError(t, rgs.Migrate(ctx, db))
	return NewPGStore(db)
}

func TestPGStore_AppendGetList(t *testing.T) {
	s := setupPGStore(t)
	ctx := context.Background()

	sid := uuid.NewString()
	a := sampleResult(sid, 280)
	b := sampleResult(sid, 5)
	b.SettledAt = a.SettledAt.Add(time.Minute)
	b.Triggered = false
	b.BonusRewards = nil
	b.MainReward = "5"

	require.NoError(t, s.Append(ctx, a))
	require.NoError(t, s.Append(ctx, b))
	// duplicate round ids are ignored
	require.NoError(t, s.Append(ctx, a))

	got, err := s.GetByRoundID(ctx, a.RoundID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.BonusRewards, got.BonusRewards)
	assert.True(t, got.BonusTotal.Equal(decimal.NewFromInt(280)))
	assert.True(t, a.SettledAt.Equal(got.SettledAt))

	missing, err := s.GetByRoundID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := s.ListBySession(ctx, sid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.RoundID, list[0].RoundID)
	assert.Equal(t, b.RoundID, list[1].RoundID)
	assert.Nil(t, list[1].BonusRewards)

	batchSID := uuid.NewString()
	var batch []*Result
	for i := 0; i < 50; i++ {
		r := sampleResult(batchSID, int64(i))
		r.SettledAt = r.SettledAt.Add(time.Duration(i) * time.Second)
		batch = append(batch, r)
	}
	require.NoError(t, s.AppendAll(ctx, batch))
	list, err = s.ListBySession(ctx, batchSID)
	require.NoError(t, err)
	require.Len(t, list, 50)
	assert.Equal(t, batch[49].RoundID, list[49].RoundID)
}
