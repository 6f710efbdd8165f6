package service

import (
	"context"
	"fmt"

	"github.com/wager-duel-backend/internal/models"
	"github.com/wager-duel-backend/internal/storage"
)

// GetGame retrieves the single session between host and opponent.
// Read-only; both identities are validated before the lookup.
func (s *GameService) GetGame(ctx context.Context, host, opponent string) (*models.GameSession, error) {
	host, err := s.addrs.Validate(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	opponent, err = s.addrs.Validate(opponent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}

	game, err := s.store.GetGame(ctx, host, opponent)
	if err != nil {
		if err == storage.ErrGameNotFound {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// ListGamesByHost retrieves every session keyed with the given identity
// as the first component, in ascending key order. May return an empty
// list.
func (s *GameService) ListGamesByHost(ctx context.Context, host string) ([]*models.GameSession, error) {
	host, err := s.addrs.Validate(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}

	games, err := s.store.ListGamesByHost(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}
