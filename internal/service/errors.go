package service

import "errors"

// Validation and settlement errors returned by the game service. Every
// failure aborts the whole operation before any store write, so a
// caller seeing one of these knows no state changed.
var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrInvalidIdentity = errors.New("invalid player identity")
	ErrSameIdentity    = errors.New("host and opponent cannot be the same")
	ErrMissingWager    = errors.New("must include wager amount")
	ErrWagerMismatch   = errors.New("wager must match the host's wager")
	ErrGameActive      = errors.New("host and opponent can only have one active game at a time")
	ErrGameNotFound    = errors.New("game between host and opponent could not be found")
	ErrCounterOverflow = errors.New("leaderboard counter overflow")
)
