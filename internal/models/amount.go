package models

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// Amount is an unsigned arbitrary-precision integer amount of a single
// denomination. It marshals as a decimal JSON string so large values
// survive clients that lose integer precision.
type Amount struct {
	i big.Int
}

// NewAmount creates an Amount from a uint64 value.
func NewAmount(v uint64) Amount {
	var a Amount
	a.i.SetUint64(v)
	return a
}

// ParseAmount parses a non-negative decimal string into an Amount.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return Amount{}, errors.New("amount is empty")
	}
	var a Amount
	if _, ok := a.i.SetString(s, 10); !ok {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	if a.i.Sign() < 0 {
		return Amount{}, fmt.Errorf("amount %q is negative", s)
	}
	return a, nil
}

// Add returns the sum of two amounts. Arbitrary precision, cannot overflow.
func (a Amount) Add(b Amount) Amount {
	var sum Amount
	sum.i.Add(&a.i, &b.i)
	return sum
}

// Equal reports whether two amounts have the same value.
func (a Amount) Equal(b Amount) bool {
	return a.i.Cmp(&b.i) == 0
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.i.Sign() == 0
}

// String returns the decimal representation.
func (a Amount) String() string {
	return a.i.String()
}

// MarshalJSON encodes the amount as a decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.i.String())), nil
}

// UnmarshalJSON decodes a decimal string (quoted or bare number).
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
