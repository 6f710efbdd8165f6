package cassandra

import (
	"fmt"

	"github.com/gocql/gocql"
	"github.com/wager-duel-backend/internal/config"
	"github.com/wager-duel-backend/pkg/logger"
)

// Client wraps a gocql.Session and provides connection management
type Client struct {
	session *gocql.Session
	config  config.CassandraConfig
	logger  *logger.Logger
}

// NewClient creates a new Cassandra client and establishes a connection
func NewClient(cfg config.CassandraConfig, log *logger.Logger) (*Client, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)

	cluster.Timeout = cfg.Timeout
	cluster.ConnectTimeout = cfg.Timeout
	cluster.Consistency = parseConsistency(cfg.Consistency)

	// Authentication (if provided)
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	// Connection pool settings
	cluster.NumConns = 2
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create Cassandra session: %w", err)
	}

	log.Info("Connected to Cassandra", logger.F("hosts", fmt.Sprintf("%v", cfg.Hosts)), logger.F("keyspace", cfg.Keyspace))

	client := &Client{
		session: session,
		config:  cfg,
		logger:  log,
	}

	if err := client.initializeSchema(); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return client, nil
}

// Session returns the underlying gocql.Session
func (c *Client) Session() *gocql.Session {
	return c.session
}

// Keyspace returns the configured keyspace
func (c *Client) Keyspace() string {
	return c.config.Keyspace
}

// Close closes the Cassandra session
func (c *Client) Close() {
	if c.session != nil {
		c.session.Close()
		c.logger.Info("Cassandra session closed")
	}
}

// initializeSchema creates the keyspace and tables if they don't exist
func (c *Client) initializeSchema() error {
	keyspace := c.config.Keyspace

	createKeyspaceQuery := fmt.Sprintf(`
		CREATE KEYSPACE IF NOT EXISTS %s
		WITH replication = {
			'class': 'SimpleStrategy',
			'replication_factor': 1
		}`, keyspace)

	if err := c.session.Query(createKeyspaceQuery).Exec(); err != nil {
		return fmt.Errorf("failed to create keyspace: %w", err)
	}

	// Games table
	// Schema design:
	// - Partition key: host (the first component of the directional key)
	// - Clustering key: opponent, ascending — a host's sessions come back
	//   in ascending key order, which is the prefix-scan the listing
	//   query needs
	// - The session itself is stored as a JSON blob; the record inside
	//   is identical under both directional keys
	createGamesQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.games (
			host text,
			opponent text,
			session text,
			PRIMARY KEY (host, opponent)
		) WITH CLUSTERING ORDER BY (opponent ASC)`, keyspace)

	if err := c.session.Query(createGamesQuery).Exec(); err != nil {
		return fmt.Errorf("failed to create games table: %w", err)
	}

	// Ledgers table, keyed by the canonically sorted pair
	createLedgersQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.ledgers (
			player_a text,
			player_b text,
			wins_a bigint,
			wins_b bigint,
			ties bigint,
			PRIMARY KEY (player_a, player_b)
		)`, keyspace)

	if err := c.session.Query(createLedgersQuery).Exec(); err != nil {
		return fmt.Errorf("failed to create ledgers table: %w", err)
	}

	c.logger.Info("Cassandra schema initialized", logger.F("keyspace", keyspace))
	return nil
}

// parseConsistency parses a consistency level string
func parseConsistency(consistencyStr string) gocql.Consistency {
	switch consistencyStr {
	case "ONE":
		return gocql.One
	case "TWO":
		return gocql.Two
	case "THREE":
		return gocql.Three
	case "QUORUM":
		return gocql.Quorum
	case "ALL":
		return gocql.All
	case "LOCAL_QUORUM":
		return gocql.LocalQuorum
	case "EACH_QUORUM":
		return gocql.EachQuorum
	case "LOCAL_ONE":
		return gocql.LocalOne
	default:
		return gocql.Quorum // Default to QUORUM for high availability
	}
}
