// Package simulator plays autopilot sessions on parallel tables and
// collects per-seat statistics.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/casino/internal/bot"
	"github.com/lox/casino/internal/config"
	"github.com/lox/casino/internal/game"
	"github.com/lox/casino/internal/handhistory"
	"github.com/lox/casino/internal/randutil"
	"github.com/lox/casino/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Tables     int
	Hands      int // maximum hands per table
	Bot        bot.Kind
	Difficulty game.Difficulty
	Seed       int64 // table i uses Seed+i; 0 picks a random base
	Parallel   int   // tables run at once, default NumCPU
	Timeout    time.Duration
	Table      *config.Config
	Logger     *log.Logger
}

// TableReport is the outcome of one simulated table
type TableReport struct {
	Table   int
	Seed    int64
	Hands   int
	Busted  bool // the autopilot seat ran out of chips
	Summary statistics.Summary
}

// Simulator runs poker session simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(cfg Config) *Simulator {
	if cfg.Table == nil {
		cfg.Table = config.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Bot == "" {
		cfg.Bot = bot.KindHeuristic
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = game.Normal
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = runtime.NumCPU()
	}
	return &Simulator{config: cfg}
}

// Run plays every table and returns their reports in table order.
func (s *Simulator) Run(ctx context.Context) ([]TableReport, error) {
	if s.config.Tables < 1 || s.config.Hands < 1 {
		return nil, fmt.Errorf("tables and hands must be positive")
	}
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	base := s.config.Seed
	if base == 0 {
		base = int64(s.config.Table.Table.Seed)
	}
	base = randutil.Seed(base)

	reports := make([]TableReport, s.config.Tables)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)

	for i := range s.config.Tables {
		g.Go(func() error {
			report, err := s.runTable(ctx, i, base+int64(i))
			if err != nil {
				return fmt.Errorf("table %d: %w", i+1, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Simulator) runTable(ctx context.Context, i int, seed int64) (TableReport, error) {
	cfg := s.config.Table
	logger := s.config.Logger.With("table", i+1)
	rng := randutil.New(seed)

	autopilot, err := bot.New(s.config.Bot, s.config.Difficulty, randutil.Split(rng), logger)
	if err != nil {
		return TableReport{}, err
	}
	opts, err := cfg.SessionOptions(rng, logger)
	if err != nil {
		return TableReport{}, err
	}

	bus := game.NewEventBus()
	collector := statistics.NewCollector()
	bus.Subscribe(collector)

	var recorder *handhistory.Recorder
	if cfg.HandHistory != nil {
		recorder, err = handhistory.NewRecorder(cfg.HandHistory.Dir, fmt.Sprintf("sim-%d", i+1), logger)
		if err != nil {
			return TableReport{}, err
		}
		bus.Subscribe(recorder)
	}

	opts = append(opts, game.WithEventBus(bus), game.WithAutopilot(autopilot))
	session, err := game.NewSession(rng, cfg.Table.Opponents, cfg.Table.PlayerChips, opts...)
	if err != nil {
		return TableReport{}, err
	}

	report := TableReport{Table: i + 1, Seed: seed}
	for report.Hands < s.config.Hands {
		if err := ctx.Err(); err != nil {
			return TableReport{}, fmt.Errorf("after %d hands: %w", report.Hands, err)
		}
		if err := session.DealStreet(); err != nil {
			if errors.Is(err, game.ErrSessionOver) {
				me, _ := session.Seat(game.HumanSeat)
				report.Busted = !me.Active
				break
			}
			return TableReport{}, err
		}
		status, err := session.Advance()
		if err != nil {
			return TableReport{}, err
		}
		if status == game.StatusAwaitingHuman {
			return TableReport{}, fmt.Errorf("autopilot did not act on hand %d", session.HandNumber())
		}
		report.Hands++
	}

	if recorder != nil {
		if err := recorder.Err(); err != nil {
			logger.Warn("some hands were not recorded", "error", err)
		}
	}
	report.Summary = collector.Summary()
	for _, seat := range report.Summary.Seats {
		if err := seat.Stats.Validate(); err != nil {
			return TableReport{}, fmt.Errorf("statistics validation failed for %s: %w", seat.Name, err)
		}
	}
	logger.Info("table finished", "seed", seed, "hands", report.Hands, "busted", report.Busted)
	return report, nil
}

// PrintSummary writes merged results of all tables to w.
func PrintSummary(w io.Writer, reports []TableReport, elapsed time.Duration) {
	summaries := make([]statistics.Summary, len(reports))
	hands, busted := 0, 0
	for i, r := range reports {
		summaries[i] = r.Summary
		hands += r.Hands
		if r.Busted {
			busted++
		}
	}
	merged := statistics.Merge(summaries...)

	fmt.Fprintf(w, "Simulated %d hands on %d tables in %s\n", hands, len(reports), elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Average pot %.1f, biggest pot %d, split pots %d, busted tables %d\n\n",
		merged.AveragePot(), merged.MaxPot, merged.Splits, busted)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEAT\tHANDS\tWINS\tSHOWDOWN\tNO SHOWDOWN\tNET\tMEAN\tMEDIAN\t95% CI")
	for _, seat := range merged.Seats {
		st := seat.Stats
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%+d\t%.2f\t%.2f\t[%.2f, %.2f]\n",
			seat.Name, st.Hands, st.Wins, st.ShowdownWins, st.NonShowdownWins,
			st.AllNet, st.Mean(), st.Median(), low, high)
	}
	tw.Flush()
}
