package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backend names accepted in STORE_BACKEND
const (
	BackendMemory    = "memory"
	BackendCassandra = "cassandra"
	BackendRedis     = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Host         string
	Port         string
	StoreBackend string

	// AdminAddress is an optional governance identity. It is validated
	// and stored at startup but consulted by no game operation.
	AdminAddress string

	Cassandra CassandraConfig
	Redis     RedisConfig
}

// CassandraConfig holds Cassandra-specific configuration
type CassandraConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	Consistency string
	Timeout     time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	host := getEnv("HOST", "0.0.0.0")
	port := getEnv("PORT", "8080")
	storeBackend := getEnv("STORE_BACKEND", BackendMemory)
	adminAddress := getEnv("ADMIN_ADDRESS", "")

	switch storeBackend {
	case BackendMemory, BackendCassandra, BackendRedis:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND value: %q", storeBackend)
	}

	// Cassandra configuration
	cassandraHosts := parseHosts(getEnv("CASSANDRA_HOSTS", "localhost:9042"))
	cassandraKeyspace := getEnv("CASSANDRA_KEYSPACE", "wager_duel")
	cassandraUsername := getEnv("CASSANDRA_USERNAME", "")
	cassandraPassword := getEnv("CASSANDRA_PASSWORD", "")
	cassandraConsistency := getEnv("CASSANDRA_CONSISTENCY", "QUORUM")
	cassandraTimeoutStr := getEnv("CASSANDRA_TIMEOUT_SECONDS", "5")
	cassandraTimeout, err := strconv.Atoi(cassandraTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CASSANDRA_TIMEOUT_SECONDS value: %w", err)
	}

	// Redis configuration
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPassword := getEnv("REDIS_PASSWORD", "")
	redisDBStr := getEnv("REDIS_DB", "0")
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	return &Config{
		Host:         host,
		Port:         port,
		StoreBackend: storeBackend,
		AdminAddress: adminAddress,
		Cassandra: CassandraConfig{
			Hosts:       cassandraHosts,
			Keyspace:    cassandraKeyspace,
			Username:    cassandraUsername,
			Password:    cassandraPassword,
			Consistency: cassandraConsistency,
			Timeout:     time.Duration(cassandraTimeout) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
	}, nil
}

// Address returns the full address (host:port)
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseHosts parses a comma-separated list of hosts
func parseHosts(hostsStr string) []string {
	parts := strings.Split(hostsStr, ",")
	hosts := make([]string, 0, len(parts))
	for _, part := range parts {
		host := strings.TrimSpace(part)
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	if len(hosts) == 0 {
		return []string{"localhost:9042"}
	}
	return hosts
}
