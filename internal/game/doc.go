// Package game implements the poker engine behind the casino's Poker table:
// seats, the betting-round state machine, the heuristic AI opponents and
// showdown settlement.
//
// The main type is Session, which owns a single table: one human seat
// (seat 0) and one to three scripted AI seats. The presentation layer drives
// it through a small set of entry points and reads immutable views back.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	s, err := game.NewSession(rng, 3, 1000)
//	if err != nil {
//	    return err
//	}
//	_ = s.DealStreet() // deal a new hand
//	for {
//	    status, err := s.Advance() // AI turns and street transitions
//	    if err != nil || status != game.StatusAwaitingHuman {
//	        break
//	    }
//	    kind := game.Check
//	    if s.ToCall(game.HumanSeat) > 0 {
//	        kind = game.Call
//	    }
//	    _ = s.SubmitAction(game.HumanSeat, kind, 0)
//	}
//	result, _ := s.LastResult()
//
// # Deterministic Testing
//
// All randomness (deck draws and AI noise) comes from the *rand.Rand passed
// to NewSession. A stacked deck can be supplied with WithDeck to script the
// cards of a hand.
//
// # Architecture
//
// Session delegates responsibilities to specialized components:
//   - BettingRound: action validation and street completion
//   - HeuristicAgent: the AI decision policy for scripted seats
//   - evaluator.Evaluate: best five card hands for AI strength and showdown
//   - EventBus: discrete state transitions for the presentation layer
//
// The engine is single threaded: one action in, one state transition out.
package game
