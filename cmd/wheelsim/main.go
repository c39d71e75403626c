// Command wheelsim plays rounds headlessly and compares observed reward frequencies with the
// configured weights.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/engine"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/rewards"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/round"
	"github.com/Ashenafi-pixel/gamecrafter-prize-wheel/session"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type options struct {
	config string
	rounds int
	seed   uint64
	out    string
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "Wheel YAML file (default: built-in 18-sector wheel)")
	flag.IntVar(&opts.rounds, "spins", 100000, "Number of rounds to play")
	flag.Uint64Var(&opts.seed, "seed", 0, "Seed for a reproducible run (0 uses crypto randomness)")
	flag.StringVar(&opts.out, "out", "", "Directory to record every round as wheel_rounds.jsonl")
	flag.Parse()

	if opts.rounds <= 0 {
		fmt.Fprintln(os.Stderr, "-spins must be positive")
		os.Exit(1)
	}
	if err := run(context.Background(), os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "simulation failed: %v\n", err)
		os.Exit(1)
	}
}

// recordBatch is how many rounds are buffered per write to the audit store.
const recordBatch = 1000

type report struct {
	rounds    int
	triggered int
	payout    decimal.Decimal
	bonus     decimal.Decimal
	tallies   map[rewards.Stream]*engine.Tally
}

func run(ctx context.Context, w io.Writer, opts options) error {
	f, err := rewards.Load(opts.config)
	if err != nil {
		return err
	}
	game, err := session.NewGame(f)
	if err != nil {
		return err
	}
	rng := engine.DefaultSource()
	if opts.seed != 0 {
		rng = engine.NewSeededSource(opts.seed)
	}
	var rec round.Recorder = round.Discard{}
	if opts.out != "" {
		rec = round.NewResultsStore(opts.out)
	}
	rep, err := simulate(ctx, game, rng, rec, opts.rounds)
	if err != nil {
		return err
	}
	return rep.write(w, game.Registry)
}

func simulate(ctx context.Context, game *session.Game, rng engine.RandomSource, rec round.Recorder, n int) (*report, error) {
	m, err := game.NewMachine(rng)
	if err != nil {
		return nil, err
	}
	sessionID := uuid.New()
	rep := &report{tallies: map[rewards.Stream]*engine.Tally{
		rewards.Main:  engine.NewTally(),
		rewards.Bonus: engine.NewTally(),
	}}
	batch := make([]*round.Result, 0, recordBatch)
	for i := 0; i < n; i++ {
		r, err := m.Play(nil)
		if err != nil {
			return nil, err
		}
		rep.rounds++
		rep.tallies[rewards.Main].Add(r.Main.Reward)
		for _, s := range r.Bonus {
			rep.tallies[rewards.Bonus].Add(s.Reward)
		}
		if r.Triggered {
			rep.triggered++
		}
		rep.payout = rep.payout.Add(r.Payout)
		rep.bonus = rep.bonus.Add(r.BonusTotal)
		batch = append(batch, round.FromRound(sessionID, r))
		if len(batch) == recordBatch {
			if err := rec.AppendAll(ctx, batch); err != nil {
				return nil, fmt.Errorf("record rounds up to %d: %w", i+1, err)
			}
			batch = batch[:0]
		}
	}
	if err := rec.AppendAll(ctx, batch); err != nil {
		return nil, fmt.Errorf("record rounds: %w", err)
	}
	return rep, nil
}

func (r *report) write(w io.Writer, reg *rewards.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, s := range rewards.Streams {
		t := r.tallies[s]
		expected, err := engine.Expected(reg, s)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s stream (%d draws)\t\t\t\t\n", s, t.Draws)
		fmt.Fprintf(tw, "reward\tcount\tobserved\texpected\t\n")
		for _, tok := range reg.Outcomes(s) {
			fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t\n", tok, t.Counts[tok], t.Frequency(tok), expected[tok])
		}
		fmt.Fprintln(tw, "\t\t\t\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	rounds := decimal.NewFromInt(int64(r.rounds))
	fmt.Fprintf(w, "rounds: %d\n", r.rounds)
	fmt.Fprintf(w, "free spins triggered: %d (%.4f)\n", r.triggered, float64(r.triggered)/float64(r.rounds))
	fmt.Fprintf(w, "mean payout: %s\n", r.payout.Div(rounds).StringFixed(2))
	fmt.Fprintf(w, "mean free-spin total: %s\n", r.bonus.Div(rounds).StringFixed(2))
	return nil
}
