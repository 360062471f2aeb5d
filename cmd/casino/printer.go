package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/game"
)

// printer narrates session events for the human at the table. Scripted
// seats' hole cards stay hidden until showdown.
type printer struct {
	out   io.Writer
	names map[game.SeatID]string
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out, names: make(map[game.SeatID]string)}
}

func (p *printer) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.HandStartedEvent:
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, headerStyle.Render(fmt.Sprintf("Hand #%d", e.HandNumber)))
		var stacks []string
		for _, seat := range e.Seats {
			p.names[seat.ID] = seat.Name
			if seat.Active {
				stacks = append(stacks, fmt.Sprintf("%s %d", seat.Name, seat.Chips))
			}
		}
		fmt.Fprintln(p.out, dimStyle.Render(strings.Join(stacks, " | ")))
	case game.CardsDealtEvent:
		if e.Seat == game.HumanSeat {
			fmt.Fprintf(p.out, "Your cards: %s\n", renderCards(e.Cards))
		}
	case game.ActionAppliedEvent:
		fmt.Fprintf(p.out, "  %s %s\n", e.Name, describeAction(e))
	case game.StreetAdvancedEvent:
		if e.Street == game.Showdown {
			fmt.Fprintln(p.out, headerStyle.Render("Showdown"))
			return
		}
		fmt.Fprintf(p.out, "%s %s %s\n",
			headerStyle.Render(titleCase(e.Street.String())+":"),
			renderCards(e.Community),
			dimStyle.Render(fmt.Sprintf("(pot %d)", e.Pot)))
	case game.HandSettledEvent:
		p.settled(e.Result)
	case game.SeatEliminatedEvent:
		fmt.Fprintln(p.out, lossStyle.Render(e.Name+" is out of chips"))
	case game.PlayerLeftEvent:
		fmt.Fprintf(p.out, "%s left the table, forfeiting %d\n", p.names[e.Seat], e.Forfeited)
	}
}

func (p *printer) settled(r game.Result) {
	if r.Showdown {
		for _, id := range slices.Sorted(maps.Keys(r.HoleCards)) {
			fmt.Fprintf(p.out, "  %s shows %s  %s\n",
				p.names[id], renderCards(r.HoleCards[id]), categoryStyle.Render(r.Hands[id].Category.String()))
		}
	}
	for _, w := range r.Winners {
		how := "uncontested"
		if r.Showdown {
			how = "with " + w.Category.String()
		}
		fmt.Fprintln(p.out, winStyle.Render(fmt.Sprintf("%s wins %d %s", w.Name, w.Amount, how)))
	}
	net := r.Net(game.HumanSeat)
	fmt.Fprintln(p.out, chipsStyle(net).Render(fmt.Sprintf("You: %+d (stack %d)", net, r.FinalChips[game.HumanSeat])))
}

func describeAction(e game.ActionAppliedEvent) string {
	var s string
	switch e.Kind {
	case game.Fold:
		s = "folds"
	case game.Check:
		s = "checks"
	case game.Call:
		s = fmt.Sprintf("calls %d", e.Committed)
	case game.Bet:
		s = fmt.Sprintf("bets %d", e.StreetStake)
	case game.Raise:
		s = fmt.Sprintf("raises to %d", e.StreetStake)
	case game.AllIn:
		s = fmt.Sprintf("is all-in for %d", e.StreetStake)
	}
	if e.AllIn && e.Kind != game.AllIn {
		s += " and is all-in"
	}
	return s
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			parts[i] = redSuitStyle.Render(c.String())
		} else {
			parts[i] = handStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
