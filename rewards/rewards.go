package rewards

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Token identifies a prize tier, e.g. "250" or "FREE SPINS". Pools and wheel sectors share this vocabulary.
type Token string

// Amount returns the monetary value of a numeric token. Marker tokens such as "FREE SPINS" return false.
func (t Token) Amount() (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(string(t)))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// WeightedEntry is one reward in a pool. Only Weight affects selection; entry order does not.
type WeightedEntry struct {
	Reward Token `yaml:"reward" json:"reward"`
	Weight int64 `yaml:"weight" json:"weight"`
}

// Pool is a named weighted set of reward tokens.
type Pool []WeightedEntry

// TotalWeight sums the positive weights. Zero-weight entries are kept in the pool but never drawn.
func (p Pool) TotalWeight() int64 {
	var total int64
	for _, e := range p {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// Stream selects one of the two independent draw sequences.
type Stream int

const (
	Main Stream = iota
	Bonus
)

// Streams lists every stream in cursor order.
var Streams = [...]Stream{Main, Bonus}

func (s Stream) String() string {
	switch s {
	case Main:
		return "main"
	case Bonus:
		return "bonus"
	default:
		return fmt.Sprintf("stream(%d)", int(s))
	}
}

// ParseStream accepts "main" or "bonus" (case-insensitive).
func ParseStream(v string) (Stream, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "main":
		return Main, nil
	case "bonus", "fs", "free_spins":
		return Bonus, nil
	}
	return 0, fmt.Errorf("unknown stream %q", v)
}

func (s Stream) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stream) UnmarshalText(b []byte) error {
	v, err := ParseStream(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
