package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/evaluator"
	"github.com/lox/casino/internal/randutil"
)

// OddsCmd estimates the equity of one hand against random opponents.
type OddsCmd struct {
	Hole      string `arg:"" help:"Hole cards, e.g. 'AsKd'"`
	Board     string `short:"b" help:"Community cards, e.g. 'Td7s8h'"`
	Opponents int    `short:"o" default:"1" help:"Opponents holding random cards"`
	Samples   int    `short:"n" default:"20000" help:"Number of Monte Carlo samples"`
	Workers   int    `short:"w" help:"Parallel workers (default NumCPU, max 8)"`
	Seed      int64  `help:"Random seed for reproducible results"`
}

func (cmd *OddsCmd) Run() error {
	return cmd.run(context.Background(), os.Stdout)
}

func (cmd *OddsCmd) run(ctx context.Context, out io.Writer) error {
	hole, err := deck.ParseCards(cmd.Hole)
	if err != nil {
		return fmt.Errorf("parse hole cards: %w", err)
	}
	var board []deck.Card
	if cmd.Board != "" {
		if board, err = deck.ParseCards(cmd.Board); err != nil {
			return fmt.Errorf("parse board: %w", err)
		}
	}

	start := time.Now()
	rng := randutil.New(randutil.Seed(cmd.Seed))
	eq, err := evaluator.EstimateEquity(ctx, hole, board, rng, evaluator.EquityOptions{
		Opponents: cmd.Opponents,
		Samples:   cmd.Samples,
		Workers:   cmd.Workers,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s", headerStyle.Render("Hand:"), renderCards(hole))
	if len(board) > 0 {
		fmt.Fprintf(out, "  %s %s", headerStyle.Render("Board:"), renderCards(board))
	}
	fmt.Fprintln(out)

	if len(hole)+len(board) >= 5 {
		if best, err := evaluator.Evaluate(append(append([]deck.Card{}, hole...), board...)); err == nil {
			fmt.Fprintf(out, "Made hand: %s\n", categoryStyle.Render(best.String()))
		}
	} else {
		fmt.Fprintf(out, "Preflop: %s\n", categoryStyle.Render(evaluator.PreflopCategory(hole).String()))
	}

	fmt.Fprintf(out, "Equity vs %d: %s  (win %.1f%%, tie %.1f%%)\n",
		cmd.Opponents,
		winStyle.Render(fmt.Sprintf("%.1f%%", eq.Share*100)),
		pct(eq.Wins, eq.Samples), pct(eq.Ties, eq.Samples))
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d samples in %s", eq.Samples, time.Since(start).Round(time.Millisecond))))
	return nil
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
