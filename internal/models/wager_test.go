package models

import (
	"encoding/json"
	"testing"
)

func TestWager_Validate(t *testing.T) {
	tests := []struct {
		name      string
		wager     Wager
		wantError bool
	}{
		{
			name:  "single coin",
			wager: Wager{{Denom: "TNT", Amount: NewAmount(10)}},
		},
		{
			name: "multiple denominations",
			wager: Wager{
				{Denom: "TNT", Amount: NewAmount(10)},
				{Denom: "ATOM", Amount: NewAmount(5)},
			},
		},
		{
			name:  "empty wager is valid shape",
			wager: Wager{},
		},
		{
			name:      "empty denomination",
			wager:     Wager{{Denom: "", Amount: NewAmount(10)}},
			wantError: true,
		},
		{
			name:      "zero amount",
			wager:     Wager{{Denom: "TNT", Amount: NewAmount(0)}},
			wantError: true,
		},
		{
			name: "duplicate denomination",
			wager: Wager{
				{Denom: "TNT", Amount: NewAmount(10)},
				{Denom: "TNT", Amount: NewAmount(5)},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wager.Validate()
			if tt.wantError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWager_Equal(t *testing.T) {
	tests := []struct {
		name     string
		a        Wager
		b        Wager
		expected bool
	}{
		{
			name:     "same single coin",
			a:        Wager{{Denom: "TNT", Amount: NewAmount(10)}},
			b:        Wager{{Denom: "TNT", Amount: NewAmount(10)}},
			expected: true,
		},
		{
			name:     "different amount",
			a:        Wager{{Denom: "TNT", Amount: NewAmount(10)}},
			b:        Wager{{Denom: "TNT", Amount: NewAmount(5)}},
			expected: false,
		},
		{
			name:     "different denomination",
			a:        Wager{{Denom: "TNT", Amount: NewAmount(10)}},
			b:        Wager{{Denom: "ATOM", Amount: NewAmount(10)}},
			expected: false,
		},
		{
			name: "order does not matter",
			a: Wager{
				{Denom: "TNT", Amount: NewAmount(10)},
				{Denom: "ATOM", Amount: NewAmount(5)},
			},
			b: Wager{
				{Denom: "ATOM", Amount: NewAmount(5)},
				{Denom: "TNT", Amount: NewAmount(10)},
			},
			expected: true,
		},
		{
			name:     "different lengths",
			a:        Wager{{Denom: "TNT", Amount: NewAmount(10)}},
			b:        Wager{{Denom: "TNT", Amount: NewAmount(10)}, {Denom: "ATOM", Amount: NewAmount(5)}},
			expected: false,
		},
		{
			name:     "empty vs non-empty",
			a:        Wager{},
			b:        Wager{{Denom: "TNT", Amount: NewAmount(10)}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
			// Equality is symmetric
			if got := tt.b.Equal(tt.a); got != tt.expected {
				t.Errorf("reverse Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWager_String(t *testing.T) {
	tests := []struct {
		name     string
		wager    Wager
		expected string
	}{
		{
			name:     "single coin",
			wager:    Wager{{Denom: "TNT", Amount: NewAmount(10)}},
			expected: "10TNT ",
		},
		{
			name: "two coins",
			wager: Wager{
				{Denom: "TNT", Amount: NewAmount(10)},
				{Denom: "ATOM", Amount: NewAmount(5)},
			},
			expected: "10TNT 5ATOM ",
		},
		{
			name:     "empty",
			wager:    Wager{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.wager.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWager_JSONRoundTrip(t *testing.T) {
	wager := Wager{
		{Denom: "TNT", Amount: NewAmount(10)},
		{Denom: "ATOM", Amount: NewAmount(5)},
	}

	data, err := json.Marshal(wager)
	if err != nil {
		t.Fatalf("Failed to marshal wager: %v", err)
	}

	var decoded Wager
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal wager: %v", err)
	}

	if !wager.Equal(decoded) {
		t.Errorf("Round trip changed wager: %q vs %q", wager.String(), decoded.String())
	}
}
