package main

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/config"
	"github.com/lox/casino/internal/evaluator"
	"github.com/lox/casino/internal/game"
	"github.com/lox/casino/internal/handhistory"
	"github.com/lox/casino/internal/randutil"
)

// PlayCmd runs an interactive session in the terminal.
type PlayCmd struct {
	Config     string `short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
	Opponents  int    `short:"o" help:"Number of AI opponents, 1-3 (overrides config)"`
	Chips      int    `help:"Starting chips (overrides config)"`
	Difficulty string `short:"d" help:"AI difficulty (overrides config)"`
	Seed       int64  `help:"RNG seed, 0 for random (overrides config)"`
	Hint       bool   `default:"true" negatable:"" help:"Show a Monte Carlo equity hint before each decision"`
	History    string `help:"Directory to record PHH hand histories (overrides config)"`
}

func (cmd *PlayCmd) Run() error {
	cfg, err := loadConfig(cmd.Config, cmd.override)
	if err != nil {
		return err
	}
	if cfg.Log.File == "" {
		// Keep the terminal for the game.
		cfg.Log.File = "casino.log"
	}
	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	return runPlay(context.Background(), cfg, os.Stdin, os.Stdout, logger, cmd.Hint)
}

func (cmd *PlayCmd) override(cfg *config.Config) error {
	if cmd.Opponents != 0 {
		cfg.Table.Opponents = cmd.Opponents
	}
	if cmd.Chips != 0 {
		cfg.Table.PlayerChips = cmd.Chips
		cfg.Table.OpponentChips = cmd.Chips
	}
	if cmd.Difficulty != "" {
		cfg.Table.Difficulty = cmd.Difficulty
		for i := range cfg.Opponents {
			cfg.Opponents[i].Difficulty = cmd.Difficulty
		}
	}
	if cmd.Seed != 0 {
		cfg.Table.Seed = uint64(cmd.Seed)
	}
	if cmd.History != "" {
		cfg.HandHistory = &config.HandHistoryBlock{Dir: cmd.History}
	}
	return nil
}

// table bundles a configured session with its optional recorder.
type table struct {
	session  *game.Session
	bus      game.EventBus
	recorder *handhistory.Recorder
	seed     int64
}

// newTable builds the interactive session from config.
func newTable(cfg *config.Config, logger *log.Logger) (*table, error) {
	seed := randutil.Seed(int64(cfg.Table.Seed))
	rng := randutil.New(seed)

	opts, err := cfg.SessionOptions(rng, logger)
	if err != nil {
		return nil, err
	}
	bus := game.NewEventBus()
	opts = append(opts, game.WithEventBus(bus))

	s, err := game.NewSession(rng, cfg.Table.Opponents, cfg.Table.PlayerChips, opts...)
	if err != nil {
		return nil, err
	}
	t := &table{session: s, bus: bus, seed: seed}

	if cfg.HandHistory != nil {
		t.recorder, err = handhistory.NewRecorder(cfg.HandHistory.Dir, "casino", logger)
		if err != nil {
			return nil, err
		}
		bus.Subscribe(t.recorder)
	}
	logger.Info("table ready", "seed", seed, "opponents", cfg.Table.Opponents)
	return t, nil
}

// runPlay runs the interactive session as a full-screen program reading
// keys from in and drawing to out.
func runPlay(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *log.Logger, hint bool) error {
	m, err := newPlayModel(ctx, cfg, logger, hint)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running table: %w", err)
	}
	return m.finish(out)
}

// finish reports how the session ended once the screen is released.
func (m *playModel) finish(out io.Writer) error {
	if m.over {
		fmt.Fprintln(out, headerStyle.Render("Game over"))
	}
	if me, err := m.table.session.Seat(game.HumanSeat); err == nil {
		fmt.Fprintf(out, "You leave with %d chips after %d hands\n", me.Chips, m.table.session.HandNumber())
	}
	if m.table.recorder != nil {
		if err := m.table.recorder.Err(); err != nil {
			fmt.Fprintln(out, lossStyle.Render("some hands were not recorded: "+err.Error()))
		}
	}
	return m.err
}

// parseCommand reads "<action> [amount]", e.g. "raise 200".
func parseCommand(line string) (game.ActionKind, int, error) {
	fields := strings.Fields(line)
	kind, err := game.ParseActionKind(fields[0])
	if err != nil {
		return game.Fold, 0, err
	}
	if len(fields) == 1 {
		return kind, 0, nil
	}
	if len(fields) > 2 {
		return game.Fold, 0, fmt.Errorf("expected '<action> [amount]', got %q", line)
	}
	amount, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Fold, 0, fmt.Errorf("invalid amount %q", fields[1])
	}
	return kind, amount, nil
}

func formatValid(valid []game.ValidAction) string {
	parts := make([]string, len(valid))
	for i, a := range valid {
		switch {
		case a.Kind == game.Bet || a.Kind == game.Raise:
			parts[i] = fmt.Sprintf("%s %d-%d", a.Kind, a.MinAmount, a.MaxAmount)
		case a.MinAmount > 0:
			parts[i] = fmt.Sprintf("%s %d", a.Kind, a.MinAmount)
		default:
			parts[i] = a.Kind.String()
		}
	}
	return strings.Join(parts, " | ")
}

func showHint(ctx context.Context, out io.Writer, s *game.Session, rng *rand.Rand) {
	me, err := s.Seat(game.HumanSeat)
	if err != nil || len(me.HoleCards) != 2 {
		return
	}
	opponents := 0
	for _, seat := range s.Seats() {
		if seat.ID != game.HumanSeat && seat.InHand {
			opponents++
		}
	}
	if opponents == 0 {
		return
	}

	eq, err := evaluator.EstimateEquity(ctx, me.HoleCards, s.Table().Community, randutil.Split(rng),
		evaluator.EquityOptions{Opponents: opponents, Samples: 1000})
	if err != nil {
		return
	}
	line := fmt.Sprintf("Equity vs %d: %.0f%%", opponents, eq.Share*100)
	if me.Best != nil {
		line += "  " + categoryStyle.Render(me.Best.Category.String())
	}
	fmt.Fprintln(out, dimStyle.Render(line))
}

func isQuit(line string) bool {
	switch strings.ToLower(line) {
	case "q", "quit", "exit", "leave":
		return true
	}
	return false
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `Commands:
  fold | check | call         act without an amount
  bet <n> | raise <n>         bet or raise to a street total of n
  allin                       commit your whole stack
  quit                        leave the table, forfeiting the current hand`)
}
