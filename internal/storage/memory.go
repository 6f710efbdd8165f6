package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/wager-duel-backend/internal/models"
)

// MemoryStorage provides in-memory storage for games and ledgers.
// A single mutex guards both maps, so the twin-key write and delete
// are atomic: no caller ever observes one directional key without
// the other.
type MemoryStorage struct {
	mu      sync.RWMutex
	games   map[pairKey]*models.GameSession
	ledgers map[pairKey]*models.Ledger
}

// pairKey is an ordered (first, second) identity pair.
type pairKey struct {
	first  string
	second string
}

// NewMemoryStorage creates a new in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		games:   make(map[pairKey]*models.GameSession),
		ledgers: make(map[pairKey]*models.Ledger),
	}
}

// PutGame stores a session under both directional keys
func (s *MemoryStorage) PutGame(ctx context.Context, game *models.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *game
	s.games[pairKey{game.Host, game.Opponent}] = &stored
	s.games[pairKey{game.Opponent, game.Host}] = &stored
	return nil
}

// GetGame retrieves the session stored under (host, opponent)
func (s *MemoryStorage) GetGame(ctx context.Context, host, opponent string) (*models.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, exists := s.games[pairKey{host, opponent}]
	if !exists {
		return nil, ErrGameNotFound
	}

	copied := *game
	return &copied, nil
}

// DeleteGame removes both directional keys for the pair
func (s *MemoryStorage) DeleteGame(ctx context.Context, host, opponent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[pairKey{host, opponent}]; !exists {
		return ErrGameNotFound
	}

	delete(s.games, pairKey{host, opponent})
	delete(s.games, pairKey{opponent, host})
	return nil
}

// ListGamesByHost retrieves every session keyed with the given identity
// as the first component, in ascending opponent order
func (s *MemoryStorage) ListGamesByHost(ctx context.Context, host string) ([]*models.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var games []*models.GameSession
	for key, game := range s.games {
		if key.first == host {
			copied := *game
			games = append(games, &copied)
		}
	}

	// Map iteration has no order; the contract is ascending key order
	sort.Slice(games, func(i, j int) bool {
		return otherSide(games[i], host) < otherSide(games[j], host)
	})

	return games, nil
}

// GetLedger retrieves the ledger row for a pair of players
func (s *MemoryStorage) GetLedger(ctx context.Context, a, b string) (*models.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, b = models.SortPair(a, b)
	ledger, exists := s.ledgers[pairKey{a, b}]
	if !exists {
		return nil, ErrLedgerNotFound
	}

	copied := *ledger
	return &copied, nil
}

// PutLedger stores a ledger row
func (s *MemoryStorage) PutLedger(ctx context.Context, ledger *models.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *ledger
	s.ledgers[pairKey{ledger.PlayerA, ledger.PlayerB}] = &copied
	return nil
}

// otherSide returns the identity on the opposite side of the session
// from the given host. Sessions are mirrored under both keys, so the
// record's Host field may be either side of the key.
func otherSide(game *models.GameSession, host string) string {
	if game.Host == host {
		return game.Opponent
	}
	return game.Host
}
