package cassandra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/wager-duel-backend/internal/models"
	"github.com/wager-duel-backend/internal/storage"
	"github.com/wager-duel-backend/pkg/logger"
)

// Repository implements storage.Repository using Cassandra
type Repository struct {
	client  *Client
	logger  *logger.Logger
	timeout time.Duration
}

// NewRepository creates a new Cassandra-based game repository
func NewRepository(client *Client, log *logger.Logger, timeout time.Duration) *Repository {
	return &Repository{
		client:  client,
		logger:  log,
		timeout: timeout,
	}
}

// PutGame stores a session under both directional keys. The two inserts
// go through a single logged batch so a partial write cannot leave one
// key without its mirror.
func (r *Repository) PutGame(ctx context.Context, game *models.GameSession) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	queryCtx, cancel := r.queryContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s.games (host, opponent, session)
		VALUES (?, ?, ?)`, r.client.Keyspace())

	batch := r.client.Session().NewBatch(gocql.LoggedBatch).WithContext(queryCtx)
	batch.Query(query, game.Host, game.Opponent, string(data))
	batch.Query(query, game.Opponent, game.Host, string(data))

	if err := r.client.Session().ExecuteBatch(batch); err != nil {
		r.logger.Error("Failed to store game in Cassandra",
			logger.F("host", game.Host),
			logger.F("opponent", game.Opponent),
			logger.F("error", err.Error()))
		return fmt.Errorf("failed to store game: %w", err)
	}

	return nil
}

// GetGame retrieves the session stored under (host, opponent)
func (r *Repository) GetGame(ctx context.Context, host, opponent string) (*models.GameSession, error) {
	query := fmt.Sprintf(`
		SELECT session
		FROM %s.games
		WHERE host = ? AND opponent = ?`, r.client.Keyspace())

	queryCtx, cancel := r.queryContext(ctx)
	defer cancel()

	var data string
	err := r.client.Session().Query(query, host, opponent).WithContext(queryCtx).Scan(&data)
	if err != nil {
		if err == gocql.ErrNotFound {
			return nil, storage.ErrGameNotFound
		}
		r.logger.Error("Failed to get game from Cassandra",
			logger.F("host", host),
			logger.F("opponent", opponent),
			logger.F("error", err.Error()))
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.GameSession
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// DeleteGame removes both directional keys for the pair, in one logged
// batch
func (r *Repository) DeleteGame(ctx context.Context, host, opponent string) error {
	queryCtx, cancel := r.queryContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		DELETE FROM %s.games
		WHERE host = ? AND opponent = ?`, r.client.Keyspace())

	batch := r.client.Session().NewBatch(gocql.LoggedBatch).WithContext(queryCtx)
	batch.Query(query, host, opponent)
	batch.Query(query, opponent, host)

	if err := r.client.Session().ExecuteBatch(batch); err != nil {
		r.logger.Error("Failed to delete game from Cassandra",
			logger.F("host", host),
			logger.F("opponent", opponent),
			logger.F("error", err.Error()))
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// ListGamesByHost retrieves every session under the host partition, in
// ascending opponent order (the table's clustering order)
func (r *Repository) ListGamesByHost(ctx context.Context, host string) ([]*models.GameSession, error) {
	query := fmt.Sprintf(`
		SELECT session
		FROM %s.games
		WHERE host = ?`, r.client.Keyspace())

	queryCtx, cancel := r.queryContext(ctx)
	defer cancel()

	iter := r.client.Session().Query(query, host).WithContext(queryCtx).Iter()
	defer iter.Close()

	var games []*models.GameSession
	var data string

	for iter.Scan(&data) {
		var game models.GameSession
		if err := json.Unmarshal([]byte(data), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}
		games = append(games, &game)
	}

	if err := iter.Close(); err != nil {
		r.logger.Error("Failed to list games by host from Cassandra",
			logger.F("host", host),
			logger.F("error", err.Error()))
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}

// GetLedger retrieves the ledger row for a pair of players
func (r *Repository) GetLedger(ctx context.Context, a, b string) (*models.Ledger, error) {
	playerA, playerB := models.SortPair(a, b)

	query := fmt.Sprintf(`
		SELECT player_a, player_b, wins_a, wins_b, ties
		FROM %s.ledgers
		WHERE player_a = ? AND player_b = ?`, r.client.Keyspace())

	queryCtx, cancel := r.queryContext(ctx)
	defer cancel()

	var ledger models.Ledger
	var winsA, winsB, ties int64
	err := r.client.Session().Query(query, playerA, playerB).WithContext(queryCtx).Scan(
		&ledger.PlayerA,
		&ledger.PlayerB,
		&winsA,
		&winsB,
		&ties,
	)

	if err != nil {
		if err == gocql.ErrNotFound {
			return nil, storage.ErrLedgerNotFound
		}
		r.logger.Error("Failed to get ledger from Cassandra",
			logger.F("player_a", playerA),
			logger.F("player_b", playerB),
			logger.F("error", err.Error()))
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	ledger.WinsA = uint64(winsA)
	ledger.WinsB = uint64(winsB)
	ledger.Ties = uint64(ties)
	return &ledger, nil
}

// PutLedger stores a ledger row
func (r *Repository) PutLedger(ctx context.Context, ledger *models.Ledger) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.ledgers (player_a, player_b, wins_a, wins_b, ties)
		VALUES (?, ?, ?, ?, ?)`, r.client.Keyspace())

	queryCtx, cancel := r.queryContext(ctx)
	defer cancel()

	err := r.client.Session().Query(query,
		ledger.PlayerA,
		ledger.PlayerB,
		int64(ledger.WinsA),
		int64(ledger.WinsB),
		int64(ledger.Ties),
	).WithContext(queryCtx).Exec()

	if err != nil {
		r.logger.Error("Failed to store ledger in Cassandra",
			logger.F("player_a", ledger.PlayerA),
			logger.F("player_b", ledger.PlayerB),
			logger.F("error", err.Error()))
		return fmt.Errorf("failed to store ledger: %w", err)
	}

	return nil
}

// queryContext applies the configured timeout when the caller's context
// has no deadline of its own
func (r *Repository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}
