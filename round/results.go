package round

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/session"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result records a completed wheel round for audit. Engine state is never stored.
type Result struct {
	RoundID      string          `json:"roundId"`
	SessionID    string          `json:"sessionId"`
	MainReward   string          `json:"mainReward"`
	MainSector   int             `json:"mainSector"`
	Triggered    bool            `json:"triggered"`
	BonusRewards []string        `json:"bonusRewards,omitempty"`
	BonusTotal   decimal.Decimal `json:"bonusTotal"`
	Payout       decimal.Decimal `json:"payout"`
	StartedAt    time.Time       `json:"startedAt"`
	SettledAt    time.Time       `json:"settledAt"`
}

// FromRound flattens a completed round.
func FromRound(sessionID uuid.UUID, r *session.Round) *Result {
	res := &Result{
		RoundID:    r.ID.String(),
		SessionID:  sessionID.String(),
		MainReward: string(r.Main.Reward),
		MainSector: r.Main.Sector,
		Triggered:  r.Triggered,
		BonusTotal: r.BonusTotal,
		Payout:     r.Payout,
		StartedAt:  r.StartedAt,
	}
	if r.FinishedAt != nil {
		res.SettledAt = *r.FinishedAt
	}
	for _, s := range r.Bonus {
		res.BonusRewards = append(res.BonusRewards, string(s.Reward))
	}
	return res
}

// Recorder stores completed rounds.
type Recorder interface {
	Append(ctx context.Context, r *Result) error
	AppendAll(ctx context.Context, rs []*Result) error
	GetByRoundID(ctx context.Context, roundID string) (*Result, error)
}

// Discard drops every result. Used when auditing is switched off.
type Discard struct{}

func (Discard) Append(context.Context, *Result) error { return nil }

func (Discard) AppendAll(context.Context, []*Result) error { return nil }

func (Discard) GetByRoundID(context.Context, string) (*Result, error) { return nil, nil }

// ResultsStore appends completed rounds to data/wheel_rounds.jsonl, one JSON object per line.
// Writes only append; reads scan the whole file.
type ResultsStore struct {
	mu      sync.Mutex
	dataDir string
}

func NewResultsStore(dataDir string) *ResultsStore {
	if dataDir == "" {
		dataDir = "data"
	}
	return &ResultsStore{dataDir: dataDir}
}

func (rs *ResultsStore) path() string {
	return filepath.Join(rs.dataDir, "wheel_rounds.jsonl")
}

func (rs *ResultsStore) ensureDir() error {
	return os.MkdirAll(rs.dataDir, 0755)
}

func (rs *ResultsStore) readLocked() ([]*Result, error) {
	f, err := os.Open(rs.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var list []*Result
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var r Result
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", rs.path(), line, err)
		}
		list = append(list, &r)
	}
	return list, sc.Err()
}

// Append adds one result to the end of the file.
func (rs *ResultsStore) Append(ctx context.Context, r *Result) error {
	return rs.AppendAll(ctx, []*Result{r})
}

// AppendAll writes a batch with a single write to the file.
func (rs *ResultsStore) AppendAll(_ context.Context, results []*Result) error {
	if len(results) == 0 {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(rs.path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// GetByRoundID returns the latest result with roundID, or nil if there is none.
func (rs *ResultsStore) GetByRoundID(_ context.Context, roundID string) (*Result, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	list, err := rs.readLocked()
	if err != nil {
		return nil, err
	}
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].RoundID == roundID {
			return list[i], nil
		}
	}
	return nil, nil
}

// ListBySession returns the session's results in append order.
func (rs *ResultsStore) ListBySession(_ context.Context, sessionID string) ([]*Result, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	list, err := rs.readLocked()
	if err != nil {
		return nil, err
	}
	var out []*Result
	for _, r := range list {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}
