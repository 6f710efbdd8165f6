package storage

import (
	"context"

	"github.com/wager-duel-backend/internal/models"
)

// GameRepository defines operations on game sessions.
//
// Every session is stored under both directional keys, (host, opponent)
// and (opponent, host), so it can be found by either player. Keeping
// the two keys in lockstep is the repository's job: PutGame and
// DeleteGame always touch both keys as a single operation, and no
// single-key write path exists. This interface is implemented by
// in-memory, Cassandra and Redis storage.
type GameRepository interface {
	// PutGame stores a session under both directional keys
	PutGame(ctx context.Context, game *models.GameSession) error

	// GetGame retrieves the session stored under (host, opponent)
	GetGame(ctx context.Context, host, opponent string) (*models.GameSession, error)

	// DeleteGame removes both directional keys for the pair
	DeleteGame(ctx context.Context, host, opponent string) error

	// ListGamesByHost retrieves every session keyed with the given
	// identity as the first component, in ascending opponent order
	ListGamesByHost(ctx context.Context, host string) ([]*models.GameSession, error)
}

// LedgerRepository defines operations on leaderboard rows. Rows are
// keyed by the canonically sorted pair; callers pass identities in
// any order.
type LedgerRepository interface {
	// GetLedger retrieves the ledger row for a pair of players
	GetLedger(ctx context.Context, a, b string) (*models.Ledger, error)

	// PutLedger stores a ledger row
	PutLedger(ctx context.Context, ledger *models.Ledger) error
}

// Repository combines game and ledger storage; every backend
// implements both.
type Repository interface {
	GameRepository
	LedgerRepository
}

// Errors
var (
	ErrGameNotFound   = &StorageError{Message: "game not found"}
	ErrLedgerNotFound = &StorageError{Message: "ledger not found"}
)

// StorageError represents a storage error
type StorageError struct {
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}
