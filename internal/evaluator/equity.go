package evaluator

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/randutil"
)

// EquityOptions controls a Monte Carlo equity run.
type EquityOptions struct {
	Opponents int // opponents holding random cards, default 1
	Samples   int // default 2000
	Workers   int // default NumCPU, capped at 8
}

// Equity is the outcome of an equity estimate.
type Equity struct {
	Samples int
	Wins    int
	Ties    int
	// Share is wins plus split shares of ties, divided by samples.
	Share float64
}

// workerResult holds the results from a Monte Carlo worker
type workerResult struct {
	samples int
	wins    int
	ties    int
	share   float64
}

// EstimateEquity estimates how often hole wins against random opponent
// hands once the board is completed to five cards. Workers each get an
// independent generator split from rng, so results are reproducible for a
// fixed seed and worker count.
func EstimateEquity(ctx context.Context, hole, board []deck.Card, rng *rand.Rand, opts EquityOptions) (Equity, error) {
	if len(hole) != 2 {
		return Equity{}, fmt.Errorf("equity: need 2 hole cards, got %d", len(hole))
	}
	if len(board) > 5 {
		return Equity{}, fmt.Errorf("equity: board has %d cards", len(board))
	}
	if opts.Opponents == 0 {
		opts.Opponents = 1
	}
	if opts.Opponents < 1 || opts.Opponents > 9 {
		return Equity{}, fmt.Errorf("equity: opponents must be between 1 and 9, got %d", opts.Opponents)
	}
	if opts.Samples <= 0 {
		opts.Samples = 2000
	}
	if opts.Workers <= 0 {
		opts.Workers = min(runtime.NumCPU(), 8)
	}
	opts.Workers = min(opts.Workers, opts.Samples)

	used := make(map[deck.Card]bool, 7)
	for _, c := range append(append([]deck.Card{}, hole...), board...) {
		if !c.Valid() {
			return Equity{}, fmt.Errorf("equity: invalid card %v", c)
		}
		if used[c] {
			return Equity{}, fmt.Errorf("equity: %w: %s", ErrDuplicateCard, c)
		}
		used[c] = true
	}

	available := make([]deck.Card, 0, 52-len(used))
	for _, c := range deck.Standard() {
		if !used[c] {
			available = append(available, c)
		}
	}

	results := make([]workerResult, opts.Workers)
	g, ctx := errgroup.WithContext(ctx)
	per := opts.Samples / opts.Workers
	remainder := opts.Samples % opts.Workers
	for w := 0; w < opts.Workers; w++ {
		n := per
		if w < remainder {
			n++
		}
		workerRng := randutil.Split(rng)
		g.Go(func() error {
			res, err := runEquityWorker(ctx, hole, board, available, opts.Opponents, n, workerRng)
			results[w] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Equity{}, err
	}

	var total workerResult
	for _, r := range results {
		total.samples += r.samples
		total.wins += r.wins
		total.ties += r.ties
		total.share += r.share
	}

	eq := Equity{Samples: total.samples, Wins: total.wins, Ties: total.ties}
	if total.samples > 0 {
		eq.Share = total.share / float64(total.samples)
	}
	return eq, nil
}

func runEquityWorker(ctx context.Context, hole, board, available []deck.Card, opponents, samples int, rng *rand.Rand) (workerResult, error) {
	var res workerResult

	cards := make([]deck.Card, len(available))
	copy(cards, available)
	need := 5 - len(board)
	draw := need + 2*opponents

	finalBoard := make([]deck.Card, 0, 5)
	heroPool := make([]deck.Card, 0, 7)
	oppPool := make([]deck.Card, 0, 7)

	for s := 0; s < samples; s++ {
		if s%256 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		// Partial Fisher-Yates: the first draw cards are a uniform sample.
		for i := 0; i < draw; i++ {
			j := i + rng.IntN(len(cards)-i)
			cards[i], cards[j] = cards[j], cards[i]
		}

		finalBoard = append(append(finalBoard[:0], board...), cards[:need]...)
		heroPool = append(append(heroPool[:0], hole...), finalBoard...)
		hero := MustEvaluate(heroPool)

		beaten := false
		tied := 0
		for o := 0; o < opponents; o++ {
			off := need + 2*o
			oppPool = append(append(oppPool[:0], cards[off:off+2]...), finalBoard...)
			switch Compare(hero, MustEvaluate(oppPool)) {
			case -1:
				beaten = true
			case 0:
				tied++
			}
			if beaten {
				break
			}
		}

		res.samples++
		switch {
		case beaten:
		case tied > 0:
			res.ties++
			res.share += 1 / float64(tied+1)
		default:
			res.wins++
			res.share++
		}
	}
	return res, nil
}
