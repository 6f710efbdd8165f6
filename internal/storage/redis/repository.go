package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"
	"github.com/wager-duel-backend/internal/config"
	"github.com/wager-duel-backend/internal/models"
	"github.com/wager-duel-backend/internal/storage"
	"github.com/wager-duel-backend/pkg/logger"
)

// Repository implements storage.Repository using Redis.
// Games and ledgers are stored as JSON values. The two directional game
// keys are written and deleted through a transactional pipeline so they
// stay in lockstep.
type Repository struct {
	client *goredis.Client
	logger *logger.Logger
}

// NewRepository creates a new Redis-based repository and verifies the
// connection.
func NewRepository(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*Repository, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis", logger.F("addr", cfg.Addr))

	return &Repository{
		client: client,
		logger: log,
	}, nil
}

// Close closes the Redis client
func (r *Repository) Close() error {
	return r.client.Close()
}

// PutGame stores a session under both directional keys
func (r *Repository) PutGame(ctx context.Context, game *models.GameSession) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, gameKey(game.Host, game.Opponent), data, 0)
	pipe.Set(ctx, gameKey(game.Opponent, game.Host), data, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to store game in Redis",
			logger.F("host", game.Host),
			logger.F("opponent", game.Opponent),
			logger.F("error", err.Error()))
		return fmt.Errorf("failed to store game: %w", err)
	}

	return nil
}

// GetGame retrieves the session stored under (host, opponent)
func (r *Repository) GetGame(ctx context.Context, host, opponent string) (*models.GameSession, error) {
	data, err := r.client.Get(ctx, gameKey(host, opponent)).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, storage.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.GameSession
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// DeleteGame removes both directional keys for the pair
func (r *Repository) DeleteGame(ctx context.Context, host, opponent string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, gameKey(host, opponent))
	pipe.Del(ctx, gameKey(opponent, host))

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to delete game from Redis",
			logger.F("host", host),
			logger.F("opponent", opponent),
			logger.F("error", err.Error()))
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// ListGamesByHost retrieves every session keyed with the given identity
// as the first component, in ascending key order. Redis keys come back
// from SCAN unordered, so the keys are sorted before fetching.
func (r *Repository) ListGamesByHost(ctx context.Context, host string) ([]*models.GameSession, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, gameKey(host, "*"), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan games: %w", err)
	}

	sort.Strings(keys)

	var games []*models.GameSession
	for _, key := range keys {
		data, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if err == goredis.Nil {
				// Deleted between scan and fetch
				continue
			}
			return nil, fmt.Errorf("failed to get game: %w", err)
		}

		var game models.GameSession
		if err := json.Unmarshal([]byte(data), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}
		games = append(games, &game)
	}

	return games, nil
}

// GetLedger retrieves the ledger row for a pair of players
func (r *Repository) GetLedger(ctx context.Context, a, b string) (*models.Ledger, error) {
	playerA, playerB := models.SortPair(a, b)

	data, err := r.client.Get(ctx, ledgerKey(playerA, playerB)).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, storage.ErrLedgerNotFound
		}
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	var ledger models.Ledger
	if err := json.Unmarshal([]byte(data), &ledger); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger: %w", err)
	}

	return &ledger, nil
}

// PutLedger stores a ledger row
func (r *Repository) PutLedger(ctx context.Context, ledger *models.Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	if err := r.client.Set(ctx, ledgerKey(ledger.PlayerA, ledger.PlayerB), data, 0).Err(); err != nil {
		r.logger.Error("Failed to store ledger in Redis",
			logger.F("player_a", ledger.PlayerA),
			logger.F("player_b", ledger.PlayerB),
			logger.F("error", err.Error()))
		return fmt.Errorf("failed to store ledger: %w", err)
	}

	return nil
}

// gameKey generates the Redis key for a directional game pair.
// Addresses are base58 and never contain ':'.
func gameKey(host, opponent string) string {
	return fmt.Sprintf("game:%s:%s", host, opponent)
}

// ledgerKey generates the Redis key for a canonical ledger pair
func ledgerKey(playerA, playerB string) string {
	return fmt.Sprintf("ledger:%s:%s", playerA, playerB)
}
