package bot

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/evaluator"
	"github.com/lox/casino/internal/game"
	"github.com/lox/casino/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

var (
	unopened = []game.ValidAction{
		{Kind: game.Fold},
		{Kind: game.Check},
		{Kind: game.Bet, MinAmount: 50, MaxAmount: 1000},
		{Kind: game.AllIn, MinAmount: 1000, MaxAmount: 1000},
	}
	facingBet = []game.ValidAction{
		{Kind: game.Fold},
		{Kind: game.Call, MinAmount: 50, MaxAmount: 50},
		{Kind: game.Raise, MinAmount: 100, MaxAmount: 1000},
		{Kind: game.AllIn, MinAmount: 1000, MaxAmount: 1000},
	}
)

func view(valid []game.ValidAction, toCall int) game.DecisionView {
	return game.DecisionView{
		Seat:   game.SeatView{Name: "bot", Chips: 1000},
		Table:  game.TableView{Street: game.Flop, Increment: 50, CurrentBet: toCall},
		ToCall: toCall,
		Valid:  valid,
	}
}

func TestNew(t *testing.T) {
	rng := randutil.New(1)
	for _, kind := range Kinds {
		agent, err := New(kind, game.Normal, rng, testLogger())
		require.NoError(t, err, kind)
		assert.NotNil(t, agent, kind)
	}

	_, err := New("shark", game.Normal, rng, testLogger())
	assert.Error(t, err)
}

func TestNewWithoutLogger(t *testing.T) {
	for _, kind := range Kinds {
		agent, err := New(kind, game.Normal, randutil.New(1), nil)
		require.NoError(t, err, kind)
		assert.NotPanics(t, func() {
			agent.Decide(view(facingBet, 50))
			agent.Decide(view(unopened, 0))
		}, kind)
	}
	assert.NotPanics(t, func() { NewFoldBot(nil).Decide(view(facingBet, 50)) })
}

func TestBotsLogDecisions(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	NewFoldBot(logger).Decide(view(facingBet, 50))
	assert.Contains(t, buf.String(), "fold-bot decision")

	buf.Reset()
	NewRandBot(randutil.New(2), logger).Decide(view(unopened, 0))
	assert.Contains(t, buf.String(), "random action")

	buf.Reset()
	tag := NewTAGBot(randutil.New(3), logger)
	folding := view(facingBet, 50)
	folding.Category = evaluator.HighCard
	tag.Decide(folding)
	assert.Contains(t, buf.String(), "TAG folding")

	buf.Reset()
	folding.Category = evaluator.FullHouse
	tag.Decide(folding)
	assert.Contains(t, buf.String(), "premium hand")
}

func TestFoldBot(t *testing.T) {
	bot := NewFoldBot(testLogger())
	assert.Equal(t, game.Check, bot.Decide(view(unopened, 0)).Kind)
	assert.Equal(t, game.Fold, bot.Decide(view(facingBet, 50)).Kind)
}

func TestCallBot(t *testing.T) {
	bot := NewCallBot(testLogger())
	assert.Equal(t, game.Check, bot.Decide(view(unopened, 0)).Kind)

	d := bot.Decide(view(facingBet, 50))
	assert.Equal(t, game.Call, d.Kind)
	assert.Equal(t, 50, d.Amount)

	short := view(unopened, 0)
	short.Seat.Chips = 60
	assert.Equal(t, game.AllIn, bot.Decide(short).Kind)
}

func TestRandBotStaysInRange(t *testing.T) {
	bot := NewRandBot(randutil.New(2), testLogger())
	seen := make(map[game.ActionKind]bool)
	for range 500 {
		d := bot.Decide(view(facingBet, 50))
		seen[d.Kind] = true
		if d.Kind == game.Raise {
			assert.GreaterOrEqual(t, d.Amount, 100)
			assert.LessOrEqual(t, d.Amount, 1000)
		}
	}
	assert.Len(t, seen, len(facingBet), "every valid action is eventually chosen")

	assert.Equal(t, game.Fold, bot.Decide(view(nil, 0)).Kind)
}

func TestManiacBotIsAggressive(t *testing.T) {
	bot := NewManiacBot(randutil.New(3), testLogger())
	aggressive := 0
	for range 1000 {
		switch bot.Decide(view(unopened, 0)).Kind {
		case game.Bet, game.AllIn:
			aggressive++
		}
	}
	assert.Greater(t, aggressive, 700)
}

func TestTAGBotPremiumHands(t *testing.T) {
	bot := NewTAGBot(randutil.New(4), testLogger())

	preflop := func(hole string) game.DecisionView {
		cards, err := deck.ParseCards(hole)
		require.NoError(t, err)
		v := view(unopened, 0)
		v.Table.Street = game.Preflop
		v.Seat.HoleCards = cards
		return v
	}

	assert.Equal(t, game.Bet, bot.Decide(preflop("AsAd")).Kind)
	assert.Equal(t, game.Bet, bot.Decide(preflop("KdAc")).Kind)
	assert.Equal(t, game.Check, bot.Decide(preflop("9s9d")).Kind)
	assert.Equal(t, game.Check, bot.Decide(preflop("7c2d")).Kind)

	postflop := view(facingBet, 50)
	postflop.Category = evaluator.FullHouse
	assert.Equal(t, game.Raise, bot.Decide(postflop).Kind)

	postflop.Category = evaluator.HighCard
	assert.Equal(t, game.Fold, bot.Decide(postflop).Kind)
}

func TestBotsPlayFullSessions(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			rng := randutil.New(11)
			agent := func() game.Agent {
				a, err := New(kind, game.Hard, rng, testLogger())
				require.NoError(t, err)
				return a
			}

			s, err := game.NewSession(rng, 3, 1000,
				game.WithLogger(testLogger()),
				game.WithAutopilot(agent()),
				game.WithAgent(1, agent()),
				game.WithAgent(2, agent()),
				game.WithAgent(3, agent()))
			require.NoError(t, err)

			for range 50 {
				if err := s.DealStreet(); err != nil {
					require.ErrorIs(t, err, game.ErrSessionOver)
					break
				}
				status, err := s.Advance()
				require.NoError(t, err)
				require.NotEqual(t, game.StatusAwaitingHuman, status)

				total := 0
				for _, seat := range s.Seats() {
					total += seat.Chips
				}
				assert.Equal(t, 4000, total)
			}
		})
	}
}
