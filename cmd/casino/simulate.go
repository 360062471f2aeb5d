package main

import (
	"context"
	"os"
	"time"

	"github.com/lox/casino/internal/bot"
	"github.com/lox/casino/internal/config"
	"github.com/lox/casino/internal/game"
	"github.com/lox/casino/internal/simulator"
)

// SimulateCmd plays autopilot sessions on parallel tables.
type SimulateCmd struct {
	Config     string        `short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
	Tables     int           `short:"t" default:"4" help:"Number of tables to run"`
	Hands      int           `short:"n" default:"1000" help:"Maximum hands per table"`
	Bot        string        `short:"b" default:"heuristic" help:"Strategy playing the human seat: heuristic, call, fold, random, maniac, tag"`
	Difficulty string        `short:"d" default:"normal" help:"Difficulty of a heuristic autopilot"`
	Seed       int64         `help:"Base RNG seed, table i uses seed+i (0 for random)"`
	Parallel   int           `short:"p" help:"Tables run at once (default NumCPU)"`
	Timeout    time.Duration `default:"10m" help:"Abort the simulation after this long"`
	History    string        `help:"Directory to record PHH hand histories"`
}

func (cmd *SimulateCmd) Run() error {
	cfg, err := loadConfig(cmd.Config, func(cfg *config.Config) error {
		if cmd.History != "" {
			cfg.HandHistory = &config.HandHistoryBlock{Dir: cmd.History}
		}
		return nil
	})
	if err != nil {
		return err
	}
	difficulty, err := game.ParseDifficulty(cmd.Difficulty)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	sim := simulator.New(simulator.Config{
		Tables:     cmd.Tables,
		Hands:      cmd.Hands,
		Bot:        bot.Kind(cmd.Bot),
		Difficulty: difficulty,
		Seed:       cmd.Seed,
		Parallel:   cmd.Parallel,
		Timeout:    cmd.Timeout,
		Table:      cfg,
		Logger:     logger,
	})

	start := time.Now()
	reports, err := sim.Run(context.Background())
	if err != nil {
		return err
	}
	simulator.PrintSummary(os.Stdout, reports, time.Since(start))
	return nil
}
