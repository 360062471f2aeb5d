// Package handhistory records played hands as PHH files, one per hand.
package handhistory

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/fileutil"
	"github.com/lox/casino/internal/game"
	"github.com/lox/casino/internal/phh"
)

// Extension is the file extension of recorded hands
const Extension = ".phh"

// Recorder subscribes to a session's events and writes each settled hand
// to <dir>/<hand id>.phh. Write failures are logged and kept in Err; they
// never interrupt play.
type Recorder struct {
	dir    string
	table  string
	logger *log.Logger

	mu      sync.Mutex
	current *phh.HandHistory
	written []string
	errs    []error
}

// NewRecorder creates a recorder writing into dir, creating it if needed.
func NewRecorder(dir, table string, logger *log.Logger) (*Recorder, error) {
	if dir == "" {
		return nil, errors.New("handhistory: output directory is required")
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("handhistory: create dir: %w", err)
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Recorder{dir: dir, table: table, logger: logger.WithPrefix("history")}, nil
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case game.HandStartedEvent:
		r.start(e)
	case game.CardsDealtEvent:
		if r.current == nil {
			return
		}
		if e.Seat == game.NoSeat {
			r.current.Add(phh.DealBoard(e.Cards))
		} else {
			r.current.Add(phh.DealHole(int(e.Seat), e.Cards))
		}
	case game.ActionAppliedEvent:
		if r.current == nil {
			return
		}
		r.current.Add(phh.FormatAction(int(e.Seat), e.Kind.String(), e.StreetStake))
	case game.HandSettledEvent:
		r.finish(e.Result)
	}
}

func (r *Recorder) start(e game.HandStartedEvent) {
	players := make([]string, len(e.Seats))
	stacks := make([]int, len(e.Seats))
	for i, seat := range e.Seats {
		players[i] = seat.Name
		stacks[i] = seat.Chips
	}
	r.current = phh.New(e.HandID, players, stacks, e.Increment, e.Timestamp())
	r.current.Table = r.table
	r.current.Metadata = map[string]any{"hand_number": e.HandNumber}
}

func (r *Recorder) finish(result game.Result) {
	hand := r.current
	r.current = nil
	if hand == nil || hand.HandID != result.HandID {
		return
	}

	if result.Showdown {
		for seat := range len(hand.Players) {
			if cards, ok := result.HoleCards[game.SeatID(seat)]; ok {
				hand.Add(phh.ShowHand(seat, cards))
			}
		}
	}

	hand.FinishingStacks = make([]int, len(hand.Players))
	hand.Winnings = make([]int, len(hand.Players))
	for seat := range len(hand.Players) {
		id := game.SeatID(seat)
		hand.FinishingStacks[seat] = result.FinalChips[id]
		hand.Winnings[seat] = result.PayoutFor(id)
	}

	if err := r.write(hand); err != nil {
		r.errs = append(r.errs, err)
		r.logger.Error("failed to record hand", "hand", hand.HandID, "error", err)
	}
}

func (r *Recorder) write(hand *phh.HandHistory) error {
	data, err := phh.EncodeToBytes(hand)
	if err != nil {
		return fmt.Errorf("encode hand %s: %w", hand.HandID, err)
	}
	path := filepath.Join(r.dir, hand.HandID+Extension)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write hand %s: %w", hand.HandID, err)
	}
	r.written = append(r.written, path)
	r.logger.Debug("recorded hand", "path", path, "actions", len(hand.Actions))
	return nil
}

// Written returns the paths of recorded hands in play order
func (r *Recorder) Written() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.written...)
}

// Err returns every write failure so far, joined
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.errs...)
}
