package service

import (
	"context"
	"fmt"
	"math"

	"github.com/wager-duel-backend/internal/engine"
	"github.com/wager-duel-backend/internal/identity"
	"github.com/wager-duel-backend/internal/models"
	"github.com/wager-duel-backend/internal/storage"
	"github.com/wager-duel-backend/pkg/logger"
)

// GameService handles game-related business logic: starting sessions,
// settling them when the opponent responds, and the read-only queries.
//
// Every operation validates all of its preconditions before touching
// storage, so a failed call never leaves a partial write behind.
type GameService struct {
	store  storage.Repository
	addrs  identity.Validator
	locks  *pairLocks
	logger *logger.Logger

	// admin is stored at setup but consulted by no operation; reserved
	// for future governance.
	admin string
}

// NewGameService creates a new game service
func NewGameService(store storage.Repository, addrs identity.Validator, admin string, log *logger.Logger) *GameService {
	return &GameService{
		store:  store,
		addrs:  addrs,
		locks:  newPairLocks(),
		logger: log,
		admin:  admin,
	}
}

// StartGame starts a new wager game hosted by host against opponent.
// The attached wager is escrowed by the host environment; this service
// only records it. The session is written under both directional keys
// so either player can find it.
func (s *GameService) StartGame(ctx context.Context, host, opponent string, hostMove models.Move, wager models.Wager) (*models.GameSession, error) {
	if err := hostMove.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	// Textual comparison happens before address validation, mirroring
	// the order callers observe errors in
	if host == opponent {
		return nil, fmt.Errorf("%w: %s", ErrSameIdentity, host)
	}

	host, err := s.addrs.Validate(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	opponent, err = s.addrs.Validate(opponent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}

	if len(wager) == 0 {
		return nil, ErrMissingWager
	}
	if err := wager.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingWager, err)
	}

	unlock := s.locks.lock(host, opponent)
	defer unlock()

	// Dual-keyed storage means this lookup also finds a game the
	// opponent hosted against us: one active game per unordered pair
	_, err = s.store.GetGame(ctx, host, opponent)
	if err == nil {
		return nil, ErrGameActive
	}
	if err != storage.ErrGameNotFound {
		return nil, fmt.Errorf("failed to check for active game: %w", err)
	}

	game := &models.GameSession{
		Host:      host,
		Opponent:  opponent,
		HostWager: wager,
		HostMove:  hostMove,
	}

	if err := s.store.PutGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to store game: %w", err)
	}

	s.logger.Info("Game started",
		logger.F("host", host),
		logger.F("opponent", opponent),
		logger.F("wager", wager.String()))

	return game, nil
}

// Respond settles a pending game: the opponent of a game hosted by host
// submits their move and matching wager. The outcome is resolved, the
// transfer instructions are computed, the leaderboard row for the pair
// is updated, and the session is deleted. Settlement is terminal.
func (s *GameService) Respond(ctx context.Context, host, opponent string, oppMove models.Move, wager models.Wager) (*models.SettlementResult, error) {
	if err := oppMove.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}

	host, err := s.addrs.Validate(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	opponent, err = s.addrs.Validate(opponent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	if err := wager.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWagerMismatch, err)
	}

	unlock := s.locks.lock(host, opponent)
	defer unlock()

	game, err := s.store.GetGame(ctx, host, opponent)
	if err != nil {
		if err == storage.ErrGameNotFound {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	// The record is mirrored under both directional keys; only the
	// stored orientation may settle. A host cannot respond to their
	// own game through the mirrored key.
	if game.Host != host || game.Opponent != opponent {
		return nil, ErrGameNotFound
	}

	if !wager.Equal(game.HostWager) {
		return nil, ErrWagerMismatch
	}

	result := engine.Resolve(game.HostMove, oppMove)
	transfers := engine.Settle(result, game.Host, game.Opponent, game.HostWager, wager)

	ledger, err := s.store.GetLedger(ctx, game.Host, game.Opponent)
	if err != nil {
		if err != storage.ErrLedgerNotFound {
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
		ledger = models.NewLedger(game.Host, game.Opponent)
	}

	if err := applyOutcome(ledger, result, game.Host, game.Opponent); err != nil {
		return nil, err
	}

	// All validations passed; the writes below are the commit
	if err := s.store.PutLedger(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to store ledger: %w", err)
	}
	if err := s.store.DeleteGame(ctx, game.Host, game.Opponent); err != nil {
		return nil, fmt.Errorf("failed to delete game: %w", err)
	}

	s.logger.Info("Game settled",
		logger.F("host", game.Host),
		logger.F("opponent", game.Opponent),
		logger.F("result", string(result)))

	return &models.SettlementResult{
		Result:    result,
		Transfers: transfers,
		Ledger:    ledger,
	}, nil
}

// applyOutcome increments exactly one leaderboard counter for the
// settled game. Counters must never silently wrap.
func applyOutcome(ledger *models.Ledger, result models.Outcome, host, opponent string) error {
	var counter *uint64
	switch result {
	case models.OutcomeTie:
		counter = &ledger.Ties
	case models.OutcomeHostWins:
		counter = winnerCounter(ledger, host)
	case models.OutcomeOppWins:
		counter = winnerCounter(ledger, opponent)
	default:
		return fmt.Errorf("unknown outcome %q", string(result))
	}

	if *counter == math.MaxUint64 {
		return ErrCounterOverflow
	}
	*counter++
	return nil
}

// winnerCounter picks the win counter belonging to the given player on
// a canonically ordered ledger row.
func winnerCounter(ledger *models.Ledger, winner string) *uint64 {
	if winner == ledger.PlayerA {
		return &ledger.WinsA
	}
	return &ledger.WinsB
}
