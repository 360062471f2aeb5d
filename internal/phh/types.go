// Package phh encodes hands in the Poker Hand History format, a TOML
// document per hand.
package phh

import "time"

// VariantNoLimitHoldem is the PHH code for no-limit Texas hold'em
const VariantNoLimitHoldem = "NT"

// HandHistory represents a single poker hand encoded in PHH format.
type HandHistory struct {
	Variant           string         `toml:"variant"`
	Table             string         `toml:"table,omitempty"`
	SeatCount         int            `toml:"seat_count,omitempty"`
	Antes             []int          `toml:"antes"`
	BlindsOrStraddles []int          `toml:"blinds_or_straddles"`
	MinBet            int            `toml:"min_bet"`
	StartingStacks    []int          `toml:"starting_stacks"`
	FinishingStacks   []int          `toml:"finishing_stacks,omitempty"`
	Winnings          []int          `toml:"winnings,omitempty"`
	Actions           []string       `toml:"actions"`
	Players           []string       `toml:"players,omitempty"`
	HandID            string         `toml:"hand"`
	Time              string         `toml:"time,omitempty"`
	TimeZone          string         `toml:"time_zone,omitempty"`
	Day               int            `toml:"day,omitempty"`
	Month             int            `toml:"month,omitempty"`
	Year              int            `toml:"year,omitempty"`
	Metadata          map[string]any `toml:"metadata,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// New creates a hand for the given players and starting stacks. The
// casino table posts no antes or blinds.
func New(handID string, players []string, stacks []int, minBet int, at time.Time) *HandHistory {
	n := len(players)
	h := &HandHistory{
		Variant:           VariantNoLimitHoldem,
		SeatCount:         n,
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            minBet,
		StartingStacks:    append([]int(nil), stacks...),
		Actions:           []string{},
		Players:           append([]string(nil), players...),
		HandID:            handID,
		Timestamp:         at,
	}
	if !at.IsZero() {
		utc := at.UTC()
		h.Time = utc.Format("15:04:05")
		h.TimeZone = "UTC"
		h.Day, h.Month, h.Year = utc.Day(), int(utc.Month()), utc.Year()
	}
	return h
}

// Add appends actions to the hand
func (h *HandHistory) Add(actions ...string) {
	h.Actions = append(h.Actions, actions...)
}
