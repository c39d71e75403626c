package session

import (
	"sync"
	"time"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/engine"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Phase is where a session is in the spin sequence.
type Phase int

const (
	Idle Phase = iota
	Spinning
	FreeSpins
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	case FreeSpins:
		return "free_spins"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Step is one resolved spin: the drawn reward and the sector the wheel must stop on.
// For free spins, Spin counts from 1 and Total is the running free-spin total including this spin.
type Step struct {
	Stream rewards.Stream  `json:"stream"`
	Spin   int             `json:"spin"`
	Reward rewards.Token   `json:"reward"`
	Sector int             `json:"sector"`
	Angle  float64         `json:"angle"`
	Total  decimal.Decimal `json:"total"`
}

// Round is a main spin plus the free spins it triggered.
type Round struct {
	ID         uuid.UUID       `json:"id"`
	Main       Step            `json:"main"`
	Triggered  bool            `json:"triggered"`
	Bonus      []Step          `json:"bonus,omitempty"`
	BonusTotal decimal.Decimal `json:"bonusTotal"`
	Payout     decimal.Decimal `json:"payout"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt *time.Time      `json:"finishedAt,omitempty"`
}

func (r *Round) clone() *Round {
	if r == nil {
		return nil
	}
	c := *r
	c.Bonus = append([]Step(nil), r.Bonus...)
	return &c
}

// Machine guards one session's engine with a busy flag (its phase). Only one spin, with its free-spin
// chain, is in flight at a time; Finish is the "spin finished" signal from the presentation layer.
type Machine struct {
	mu        sync.Mutex
	game      *Game
	eng       *engine.Engine
	rng       engine.RandomSource
	phase     Phase
	round     *Round
	remaining int
	last      *Round
}

// Spin draws the main reward and starts a round. It returns ErrBusy unless the machine is idle.
func (m *Machine) Spin() (Step, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != Idle {
		return Step{}, ErrBusy
	}
	tok := m.eng.Draw(rewards.Main)
	step, err := m.resolve(rewards.Main, 0, tok)
	if err != nil {
		return Step{}, err
	}
	f := m.game.File
	m.round = &Round{
		ID:        uuid.New(),
		Main:      step,
		Triggered: f.FreeSpins > 0 && tok == f.BonusTrigger,
		StartedAt: time.Now().UTC(),
	}
	m.phase = Spinning
	return step, nil
}

// Finish reports that the current spin animation ended. While free spins remain it draws the next one
// and returns it; otherwise the round is complete, the machine goes idle and the round is returned.
func (m *Machine) Finish() (*Step, *Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.phase {
	case Spinning:
		if !m.round.Triggered {
			return nil, m.complete(), nil
		}
		m.phase = FreeSpins
		m.remaining = m.game.File.FreeSpins
		return m.nextBonus()
	case FreeSpins:
		if m.remaining > 0 {
			return m.nextBonus()
		}
		return nil, m.complete(), nil
	default:
		return nil, nil, ErrIdle
	}
}

func (m *Machine) nextBonus() (*Step, *Round, error) {
	tok := m.eng.Draw(rewards.Bonus)
	step, err := m.resolve(rewards.Bonus, len(m.round.Bonus)+1, tok)
	if err != nil {
		return nil, nil, err
	}
	amount, _ := tok.Amount()
	m.round.BonusTotal = m.round.BonusTotal.Add(amount)
	step.Total = m.round.BonusTotal
	m.round.Bonus = append(m.round.Bonus, step)
	m.remaining--
	return &step, nil, nil
}

func (m *Machine) complete() *Round {
	r := m.round
	finished := time.Now().UTC()
	r.FinishedAt = &finished
	r.Payout = r.BonusTotal
	if amount, ok := r.Main.Reward.Amount(); ok {
		r.Payout = r.Payout.Add(amount)
	}
	m.phase = Idle
	m.round = nil
	m.remaining = 0
	m.last = r
	return r.clone()
}

func (m *Machine) resolve(s rewards.Stream, spin int, tok rewards.Token) (Step, error) {
	idx, err := m.game.Layout.Resolve(tok, m.rng)
	if err != nil {
		return Step{}, err
	}
	sec, _ := m.game.Layout.Sector(idx)
	return Step{Stream: s, Spin: spin, Reward: tok, Sector: idx, Angle: sec.Angle}, nil
}

// Status is a snapshot of a machine.
type Status struct {
	Phase     Phase                  `json:"phase"`
	Positions map[rewards.Stream]int `json:"positions"`
	Remaining int                    `json:"remaining"`
	Current   *Round                 `json:"current,omitempty"`
	Last      *Round                 `json:"last,omitempty"`
}

// Status returns the phase, cursor positions and rounds without changing anything.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos := make(map[rewards.Stream]int, len(rewards.Streams))
	for _, s := range rewards.Streams {
		pos[s] = m.eng.Position(s)
	}
	return Status{
		Phase:     m.phase,
		Positions: pos,
		Remaining: m.remaining,
		Current:   m.round.clone(),
		Last:      m.last.clone(),
	}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}
