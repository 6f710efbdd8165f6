package identity

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Validator resolves a raw counterparty identifier to its canonical
// address, or rejects it. The game service treats this as an external
// capability so the address scheme can change without touching game
// logic.
type Validator interface {
	Validate(addr string) (string, error)
}

const (
	// AddressPrefix is the human-readable prefix of every player address.
	AddressPrefix = "w1"

	// payloadSize is the decoded length of the base58 payload.
	payloadSize = 20

	// maxAddressLen bounds raw input before any decoding happens.
	maxAddressLen = 64
)

// Base58Validator validates addresses of the form "w1" followed by a
// base58-encoded 20-byte payload.
type Base58Validator struct{}

// NewBase58Validator creates an address validator for the default
// address scheme.
func NewBase58Validator() *Base58Validator {
	return &Base58Validator{}
}

// Validate checks the address and returns its canonical form. Base58 is
// case sensitive, so the canonical form is the input itself; validation
// only accepts or rejects.
func (v *Base58Validator) Validate(addr string) (string, error) {
	if addr == "" {
		return "", fmt.Errorf("address is empty")
	}
	if len(addr) > maxAddressLen {
		return "", fmt.Errorf("address exceeds %d characters", maxAddressLen)
	}
	if !strings.HasPrefix(addr, AddressPrefix) {
		return "", fmt.Errorf("address %q does not start with %q", addr, AddressPrefix)
	}

	payload, err := base58.Decode(addr[len(AddressPrefix):])
	if err != nil {
		return "", fmt.Errorf("address %q is not valid base58: %w", addr, err)
	}
	if len(payload) != payloadSize {
		return "", fmt.Errorf("address %q decodes to %d bytes, want %d", addr, len(payload), payloadSize)
	}

	return addr, nil
}

// Encode builds a canonical address from a raw payload. Used by tooling
// and tests that need well-formed addresses.
func Encode(payload [payloadSize]byte) string {
	return AddressPrefix + base58.Encode(payload[:])
}
