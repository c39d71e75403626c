package round

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGStore keeps results in the wheel_rounds table (see sql/postgres).
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const insertRound = `
	INSERT INTO wheel_rounds (round_id, session_id, main_reward, main_sector, triggered,
	                          bonus_rewards, bonus_total, payout, started_at, settled_at)
	VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10)
	ON CONFLICT (round_id) DO NOTHING
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, ex execer, r *Result) error {
	bonus, err := json.Marshal(nonNil(r.BonusRewards))
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, insertRound, r.RoundID, r.SessionID, r.MainReward, r.MainSector, r.Triggered,
		string(bonus), r.BonusTotal, r.Payout, r.StartedAt, r.SettledAt)
	if err != nil {
		return fmt.Errorf("insert wheel round %s: %w", r.RoundID, err)
	}
	return nil
}

func (s *PGStore) Append(ctx context.Context, r *Result) error {
	return insert(ctx, s.db, r)
}

// AppendAll inserts the batch in one transaction.
func (s *PGStore) AppendAll(ctx context.Context, results []*Result) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, r := range results {
		if err := insert(ctx, tx, r); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PGStore) GetByRoundID(ctx context.Context, roundID string) (*Result, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT round_id::text, session_id::text, main_reward, main_sector, triggered,
		       bonus_rewards::text, bonus_total, payout, started_at, settled_at
		FROM wheel_rounds WHERE round_id = $1
	`, roundID)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// ListBySession returns the session's results ordered by settlement time.
func (s *PGStore) ListBySession(ctx context.Context, sessionID string) ([]*Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT round_id::text, session_id::text, main_reward, main_sector, triggered,
		       bonus_rewards::text, bonus_total, payout, started_at, settled_at
		FROM wheel_rounds WHERE session_id = $1
		ORDER BY settled_at, round_id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (*Result, error) {
	var r Result
	var bonus string
	if err := sc.Scan(&r.RoundID, &r.SessionID, &r.MainReward, &r.MainSector, &r.Triggered,
		&bonus, &r.BonusTotal, &r.Payout, &r.StartedAt, &r.SettledAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(bonus), &r.BonusRewards); err != nil {
		return nil, fmt.Errorf("decode bonus rewards: %w", err)
	}
	if len(r.BonusRewards) == 0 {
		r.BonusRewards = nil
	}
	return &r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
