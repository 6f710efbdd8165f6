package models

import (
	"fmt"
	"strings"
)

// Coin is a single (denomination, amount) pair.
type Coin struct {
	Denom  string `json:"denom"`
	Amount Amount `json:"amount"`
}

// Wager is the funds a player commits when starting or responding to a
// game: one or more coins.
type Wager []Coin

// Validate checks that every coin has a denomination and a positive
// amount, and that no denomination appears twice. Emptiness is a
// separate condition checked by the service (a responder's funds are
// compared against the stored wager instead).
func (w Wager) Validate() error {
	seen := make(map[string]bool, len(w))
	for _, c := range w {
		if c.Denom == "" {
			return fmt.Errorf("coin has empty denomination")
		}
		if c.Amount.IsZero() {
			return fmt.Errorf("coin %s has zero amount", c.Denom)
		}
		if seen[c.Denom] {
			return fmt.Errorf("duplicate denomination %s", c.Denom)
		}
		seen[c.Denom] = true
	}
	return nil
}

// Equal reports whether two wagers carry the same funds. The comparison
// is set-based: the same denominations with the same amounts, in any
// order. Both wagers are assumed to have unique denominations (enforced
// by Validate).
func (w Wager) Equal(other Wager) bool {
	if len(w) != len(other) {
		return false
	}
	amounts := make(map[string]Amount, len(w))
	for _, c := range w {
		amounts[c.Denom] = c.Amount
	}
	for _, c := range other {
		a, ok := amounts[c.Denom]
		if !ok || !a.Equal(c.Amount) {
			return false
		}
	}
	return true
}

// String renders the wager as amount-denomination pairs, space-joined
// with a trailing space per pair, e.g. "10TNT " or "10TNT 5ATOM ".
func (w Wager) String() string {
	var b strings.Builder
	for _, c := range w {
		b.WriteString(c.Amount.String())
		b.WriteString(c.Denom)
		b.WriteString(" ")
	}
	return b.String()
}
