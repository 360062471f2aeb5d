package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/evaluator"
	"github.com/lox/casino/internal/gameid"
)

// Opponent limits for a session
const (
	MinOpponents = 1
	MaxOpponents = 3
)

// Status reports where Advance stopped
type Status int

const (
	StatusIdle          Status = iota // no hand dealt yet
	StatusAwaitingHuman               // the human seat must act
	StatusHandComplete                // the hand was settled, deal the next one
	StatusSessionOver                 // the human busted or no opponents remain
)

func (s Status) String() string {
	switch s {
	case StatusAwaitingHuman:
		return "awaiting human"
	case StatusHandComplete:
		return "hand complete"
	case StatusSessionOver:
		return "session over"
	default:
		return "idle"
	}
}

// Session is one human seat playing hands against scripted seats. It owns
// the seat arena, the deck and the betting state, and mutates them only
// through its entry points. A Session is not safe for concurrent use.
type Session struct {
	cfg    *sessionConfig
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand
	bus    EventBus
	ids    *gameid.Generator
	deck   *deck.Deck

	seats   []*Seat
	betting *BettingRound
	board   []deck.Card
	pot     int // collected from finished streets
	street  Street
	turn    SeatID

	handID       string
	handNumber   int
	live         bool
	streetClosed bool
	result       *Result
	closed       bool
}

// NewSession creates a session with a human seat and 1..3 scripted seats.
// The rng is the single random source for dealing, AI decisions and hand
// IDs, so a seeded rng replays a session exactly.
//
// Example usage:
//
//	rng := randutil.New(42)
//	s, err := NewSession(rng, 2, 1000,
//	    WithDifficulty(Hard),
//	    WithLogger(logger))
func NewSession(rng *rand.Rand, opponents int, playerChips int, opts ...SessionOption) (*Session, error) {
	if rng == nil {
		panic("rng is required for session creation")
	}
	if opponents < MinOpponents || opponents > MaxOpponents {
		return nil, fmt.Errorf("opponents must be between %d and %d, got %d", MinOpponents, MaxOpponents, opponents)
	}
	if playerChips <= 0 {
		return nil, fmt.Errorf("player chips must be positive, got %d", playerChips)
	}

	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.increment <= 0 {
		return nil, fmt.Errorf("bet increment must be positive, got %d", cfg.increment)
	}
	if cfg.opponentChips < 0 {
		return nil, fmt.Errorf("opponent chips must not be negative, got %d", cfg.opponentChips)
	}
	for id := range cfg.agents {
		if id <= HumanSeat || int(id) > opponents {
			return nil, fmt.Errorf("agent configured for unknown scripted seat %d", id)
		}
	}

	s := &Session{
		cfg:    cfg,
		logger: cfg.logger.WithPrefix("session"),
		clock:  cfg.clock,
		rng:    rng,
		bus:    cfg.bus,
		ids:    gameid.NewGenerator(cfg.clock, rng),
		deck:   cfg.deck,
		turn:   NoSeat,
	}
	if s.bus == nil {
		s.bus = NewEventBus()
	}
	if s.deck == nil {
		s.deck = deck.NewDeck(rng)
	}

	s.seats = make([]*Seat, 0, opponents+1)
	s.seats = append(s.seats, &Seat{
		ID:     HumanSeat,
		Name:   cfg.playerName,
		Kind:   Human,
		Chips:  playerChips,
		Active: true,
		Agent:  cfg.humanAgent,
	})

	opponentChips := cfg.opponentChips
	if opponentChips == 0 {
		opponentChips = playerChips
	}
	for i := 1; i <= opponents; i++ {
		id := SeatID(i)
		profile, ok := cfg.profiles[id]
		if !ok {
			profile = cfg.defaultProfile
		}
		agent, ok := cfg.agents[id]
		if !ok {
			agent = NewHeuristicAgent(profile, rng)
		}
		s.seats = append(s.seats, &Seat{
			ID:      id,
			Name:    cfg.opponentName(id),
			Kind:    Scripted,
			Chips:   opponentChips,
			Active:  true,
			Agent:   agent,
			Profile: profile,
		})
	}
	s.betting = NewBettingRound(len(s.seats), cfg.increment)

	return s, nil
}

// Bus returns the bus the session publishes to
func (s *Session) Bus() EventBus {
	return s.bus
}

// DealStreet starts a new hand when none is live, otherwise deals the
// next street once the current street's betting has closed.
func (s *Session) DealStreet() error {
	if s.closed {
		return ErrSessionClosed
	}
	if !s.live {
		return s.startHand()
	}
	if s.handOver() {
		return fmt.Errorf("%w: hand is awaiting settlement", ErrHandInProgress)
	}
	if !s.streetClosed {
		return fmt.Errorf("%w: %s betting is still open", ErrHandInProgress, s.street)
	}
	return s.nextStreet()
}

func (s *Session) startHand() error {
	if !s.seats[HumanSeat].Active || s.activeCount() < 2 {
		return ErrSessionOver
	}

	s.handNumber++
	s.handID = s.ids.Generate()
	s.result = nil
	s.deck.Reset()
	s.board = nil
	s.pot = 0
	s.street = Preflop
	for _, seat := range s.seats {
		seat.resetHand()
	}

	s.bus.Publish(HandStartedEvent{
		HandID:     s.handID,
		HandNumber: s.handNumber,
		Seats:      s.views(func(*Seat) bool { return false }),
		Increment:  s.betting.Increment,
		timestamp:  s.now(),
	})

	for _, seat := range s.seats {
		if !seat.Active {
			continue
		}
		cards, err := s.deck.DrawN(2)
		if err != nil {
			return fmt.Errorf("deal hole cards to seat %d: %w", seat.ID, err)
		}
		seat.HoleCards = cards
		seat.Dealt = true
		s.bus.Publish(CardsDealtEvent{
			HandID:    s.handID,
			Street:    Preflop,
			Seat:      seat.ID,
			Cards:     slices.Clone(cards),
			timestamp: s.now(),
		})
	}

	s.live = true
	s.logger.Info("hand started", "hand", s.handID, "number", s.handNumber, "seats", s.activeCount())
	s.beginStreet()
	return nil
}

// beginStreet resets betting and hands the turn to the first seat that
// can act, starting from the human seat.
func (s *Session) beginStreet() {
	s.betting.Reset()
	s.streetClosed = false
	s.turn = s.nextToAct(NoSeat)
	if s.turn == NoSeat || s.betting.IsComplete(s.seats) {
		s.closeStreet()
	}
}

func (s *Session) closeStreet() {
	s.streetClosed = true
	s.turn = NoSeat
}

func (s *Session) nextStreet() error {
	s.collect()

	next := s.street + 1
	if n := next.boardCards(); n > 0 {
		cards, err := s.deck.DrawN(n)
		if err != nil {
			return fmt.Errorf("deal %s: %w", next, err)
		}
		s.board = append(s.board, cards...)
		s.bus.Publish(CardsDealtEvent{
			HandID:    s.handID,
			Street:    next,
			Seat:      NoSeat,
			Cards:     slices.Clone(cards),
			timestamp: s.now(),
		})
	}
	s.street = next
	s.refreshHands()

	s.bus.Publish(StreetAdvancedEvent{
		HandID:    s.handID,
		Street:    next,
		Community: slices.Clone(s.board),
		Pot:       s.pot,
		timestamp: s.now(),
	})
	s.logger.Debug("street advanced", "hand", s.handID, "street", next, "board", deck.FormatCards(s.board), "pot", s.pot)

	if next == Showdown {
		s.closeStreet()
		return nil
	}
	s.beginStreet()
	return nil
}

// collect moves street stakes into the pot.
func (s *Session) collect() {
	for _, seat := range s.seats {
		s.pot += seat.StreetStake
		seat.StreetStake = 0
	}
}

// refreshHands re-evaluates every seat still in the hand against the board.
func (s *Session) refreshHands() {
	if len(s.board) < 3 {
		return
	}
	for _, seat := range s.seats {
		if !seat.InHand() {
			continue
		}
		hand, err := evaluator.Evaluate(append(slices.Clone(seat.HoleCards), s.board...))
		if err != nil {
			s.logger.Error("failed to evaluate hand", "seat", seat.ID, "error", err)
			continue
		}
		seat.Best = &hand
	}
}

// SubmitAction applies an action for a seat. Rejected actions leave the
// session unchanged and the same seat still to act.
func (s *Session) SubmitAction(id SeatID, kind ActionKind, amount int) error {
	return s.submit(id, kind, amount, "")
}

func (s *Session) submit(id SeatID, kind ActionKind, amount int, reasoning string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if !s.live {
		return ErrNoHand
	}
	if id < 0 || int(id) >= len(s.seats) {
		return fmt.Errorf("%w: no seat %d", ErrInvalidSeat, id)
	}
	seat := s.seats[id]
	switch {
	case !seat.Active:
		return fmt.Errorf("%w: seat %d is out of the game", ErrInvalidSeat, id)
	case !seat.Dealt:
		return fmt.Errorf("%w: seat %d is not in this hand", ErrInvalidSeat, id)
	case seat.Folded:
		return fmt.Errorf("%w: seat %d has folded", ErrInvalidSeat, id)
	}
	if s.streetClosed || s.handOver() {
		return &ActionError{Seat: id, Kind: kind, Amount: amount, Reason: "no action pending"}
	}
	if s.turn != id {
		return fmt.Errorf("%w: seat %d acted while seat %d is to act", ErrOutOfTurn, id, s.turn)
	}

	target, err := s.betting.Validate(seat, kind, amount)
	if err != nil {
		return err
	}
	s.apply(seat, kind, target, reasoning)
	return nil
}

// apply mutates state for an already validated action.
func (s *Session) apply(seat *Seat, kind ActionKind, target int, reasoning string) {
	before := seat.Chips

	switch kind {
	case Fold:
		seat.Folded = true
	case Call, Bet, Raise, AllIn:
		seat.commit(target - seat.StreetStake)
	}

	switch {
	case kind == Bet || kind == Raise:
		s.betting.CurrentBet = target
		s.betting.reopen(seat.ID)
	case kind == AllIn && seat.StreetStake > s.betting.CurrentBet:
		s.betting.CurrentBet = seat.StreetStake
		s.betting.reopen(seat.ID)
	default:
		s.betting.MarkActed(seat.ID)
	}

	s.bus.Publish(ActionAppliedEvent{
		HandID:      s.handID,
		Street:      s.street,
		Seat:        seat.ID,
		Name:        seat.Name,
		Kind:        kind,
		Committed:   before - seat.Chips,
		StreetStake: seat.StreetStake,
		CurrentBet:  s.betting.CurrentBet,
		Pot:         s.potTotal(),
		AllIn:       seat.AllIn,
		Reasoning:   reasoning,
		timestamp:   s.now(),
	})
	s.logger.Debug("action applied",
		"hand", s.handID,
		"street", s.street,
		"seat", seat.Name,
		"action", kind,
		"stake", seat.StreetStake,
		"chips", seat.Chips,
		"reason", reasoning)

	if s.inHandCount() <= 1 || s.betting.IsComplete(s.seats) {
		s.closeStreet()
		return
	}
	s.turn = s.nextToAct(seat.ID)
}

// Advance drives scripted seats and street transitions until the human
// seat must act or the hand has been settled.
func (s *Session) Advance() (Status, error) {
	if s.closed {
		return StatusSessionOver, ErrSessionClosed
	}
	if !s.live {
		if s.result != nil {
			return s.statusAfterHand(), nil
		}
		return StatusIdle, ErrNoHand
	}

	for {
		if s.handOver() {
			if _, err := s.Settle(); err != nil {
				return StatusIdle, err
			}
			return s.statusAfterHand(), nil
		}
		if s.streetClosed {
			if err := s.nextStreet(); err != nil {
				return StatusIdle, err
			}
			continue
		}

		seat := s.seats[s.turn]
		if seat.Agent == nil {
			return StatusAwaitingHuman, nil
		}
		if err := s.runAgent(seat); err != nil {
			return StatusIdle, err
		}
	}
}

// runAgent asks a seat's agent for a decision. A rejected decision is
// replaced by check, or fold when checking is not allowed.
func (s *Session) runAgent(seat *Seat) error {
	view := s.decisionView(seat)
	d := seat.Agent.Decide(view)

	err := s.submit(seat.ID, d.Kind, d.Amount, d.Reasoning)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrIllegalAction) {
		return err
	}

	fallback := Fold
	if view.CanTake(Check) {
		fallback = Check
	}
	s.logger.Warn("agent decision rejected",
		"seat", seat.Name,
		"action", d.Kind,
		"amount", d.Amount,
		"fallback", fallback,
		"error", err)
	return s.submit(seat.ID, fallback, 0, fmt.Sprintf("fallback after rejected %s", d.Kind))
}

func (s *Session) statusAfterHand() Status {
	if !s.seats[HumanSeat].Active || s.activeCount() < 2 {
		return StatusSessionOver
	}
	return StatusHandComplete
}

// Leave forfeits the human seat's stake in the current hand, lets the
// scripted seats finish and settle it, then closes the session. The
// returned Result is zero when no hand was live.
func (s *Session) Leave() (Result, error) {
	if s.closed {
		return Result{}, ErrSessionClosed
	}

	human := s.seats[HumanSeat]
	forfeited := 0
	if s.live && human.InHand() && !s.handOver() {
		forfeited = human.HandStake
		human.Folded = true
		if s.inHandCount() <= 1 || s.betting.IsComplete(s.seats) {
			s.closeStreet()
		} else if s.turn == HumanSeat {
			s.turn = s.nextToAct(HumanSeat)
		}
	}
	human.Agent = nil

	s.bus.Publish(PlayerLeftEvent{Seat: HumanSeat, Forfeited: forfeited, timestamp: s.now()})
	s.logger.Info("player left", "hand", s.handID, "forfeited", forfeited)

	var result Result
	if s.live {
		for s.live {
			if _, err := s.Advance(); err != nil {
				return Result{}, fmt.Errorf("finish hand after leaving: %w", err)
			}
		}
		result = *s.result
	}

	s.closed = true
	return result, nil
}

// Closed reports whether the human has left
func (s *Session) Closed() bool {
	return s.closed
}

func (s *Session) handOver() bool {
	return s.inHandCount() <= 1 || s.street == Showdown
}

func (s *Session) nextToAct(after SeatID) SeatID {
	n := len(s.seats)
	for i := range n {
		id := (int(after) + 1 + i) % n
		if s.seats[id].CanAct() {
			return SeatID(id)
		}
	}
	return NoSeat
}

func (s *Session) inHandCount() int {
	count := 0
	for _, seat := range s.seats {
		if seat.InHand() {
			count++
		}
	}
	return count
}

func (s *Session) activeCount() int {
	count := 0
	for _, seat := range s.seats {
		if seat.Active {
			count++
		}
	}
	return count
}

func (s *Session) potTotal() int {
	total := s.pot
	for _, seat := range s.seats {
		total += seat.StreetStake
	}
	return total
}

func (s *Session) now() time.Time {
	return s.clock.Now("session", "event")
}
