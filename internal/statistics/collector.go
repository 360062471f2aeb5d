package statistics

import (
	"sort"
	"sync"

	"github.com/lox/casino/internal/game"
)

// Collector subscribes to a session's events and keeps per-seat
// Statistics. It is safe to read while the session is playing.
type Collector struct {
	mu     sync.Mutex
	names  map[game.SeatID]string
	seats  map[game.SeatID]*Statistics
	folded map[game.SeatID]bool
	hands  int
	maxPot int
	potSum int
	splits int
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{
		names:  make(map[game.SeatID]string),
		seats:  make(map[game.SeatID]*Statistics),
		folded: make(map[game.SeatID]bool),
	}
}

// OnEvent implements game.EventSubscriber
func (c *Collector) OnEvent(event game.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e := event.(type) {
	case game.HandStartedEvent:
		clear(c.folded)
		for _, seat := range e.Seats {
			c.names[seat.ID] = seat.Name
		}
	case game.ActionAppliedEvent:
		if e.Kind == game.Fold {
			c.folded[e.Seat] = true
		}
	case game.PlayerLeftEvent:
		c.folded[e.Seat] = true
	case game.HandSettledEvent:
		c.record(e.Result)
	}
}

func (c *Collector) record(result game.Result) {
	c.hands++
	c.potSum += result.Pot
	c.maxPot = max(c.maxPot, result.Pot)
	if len(result.Winners) > 1 {
		c.splits++
	}

	for id := range result.Contributed {
		stats := c.seats[id]
		if stats == nil {
			stats = &Statistics{}
			c.seats[id] = stats
		}
		_, shown := result.HoleCards[id]
		stats.Add(HandResult{
			Net:            result.Net(id),
			Won:            result.PayoutFor(id) > 0,
			WentToShowdown: result.Showdown && shown,
			Folded:         c.folded[id],
			FinalPotSize:   result.Pot,
			StreetReached:  result.Street.String(),
		})
	}
}

// Hands returns the number of settled hands seen
func (c *Collector) Hands() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hands
}

// Summary is a snapshot of table-wide and per-seat statistics
type Summary struct {
	Hands    int
	MaxPot   int
	TotalPot int
	Splits   int
	Seats    []SeatSummary // ordered by seat
}

// SeatSummary is one seat's statistics
type SeatSummary struct {
	Seat  game.SeatID
	Name  string
	Stats Statistics
}

// AveragePot returns the mean pot size
func (s Summary) AveragePot() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.TotalPot) / float64(s.Hands)
}

// Seat returns the summary of one seat
func (s Summary) Seat(id game.SeatID) (SeatSummary, bool) {
	for _, seat := range s.Seats {
		if seat.Seat == id {
			return seat, true
		}
	}
	return SeatSummary{}, false
}

// Summary returns a copy of everything collected so far
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := Summary{Hands: c.hands, MaxPot: c.maxPot, TotalPot: c.potSum, Splits: c.splits}
	for id, stats := range c.seats {
		copied := *stats
		copied.Values = append([]float64(nil), stats.Values...)
		sum.Seats = append(sum.Seats, SeatSummary{Seat: id, Name: c.names[id], Stats: copied})
	}
	sort.Slice(sum.Seats, func(i, j int) bool { return sum.Seats[i].Seat < sum.Seats[j].Seat })
	return sum
}

// Merge combines summaries of several tables, matching seats by ID.
func Merge(summaries ...Summary) Summary {
	var out Summary
	bySeat := make(map[game.SeatID]*SeatSummary)
	for _, s := range summaries {
		out.Hands += s.Hands
		out.TotalPot += s.TotalPot
		out.Splits += s.Splits
		out.MaxPot = max(out.MaxPot, s.MaxPot)
		for _, seat := range s.Seats {
			merged, ok := bySeat[seat.Seat]
			if !ok {
				merged = &SeatSummary{Seat: seat.Seat, Name: seat.Name}
				bySeat[seat.Seat] = merged
			}
			merged.Stats.Merge(&seat.Stats)
		}
	}
	for _, seat := range bySeat {
		out.Seats = append(out.Seats, *seat)
	}
	sort.Slice(out.Seats, func(i, j int) bool { return out.Seats[i].Seat < out.Seats[j].Seat })
	return out
}
