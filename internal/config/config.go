package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	StatsWorkerCount int
	StatsQueueSize   int
	AIMoveTimeoutMS  int
	PuzzleFile       string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:arcade.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		StatsWorkerCount: envIntOr("STATS_WORKER_COUNT", 2),
		StatsQueueSize:   envIntOr("STATS_QUEUE_SIZE", 64),
		AIMoveTimeoutMS:  envIntOr("AI_MOVE_TIMEOUT_MS", 2000),
		PuzzleFile:       os.Getenv("PUZZLE_FILE"),
	}
}

// AIMoveTimeout is the deadline for a single opponent move.
func (c Config) AIMoveTimeout() time.Duration {
	return time.Duration(c.AIMoveTimeoutMS) * time.Millisecond
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.StatsWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("STATS_WORKER_COUNT must be at least 1 (got %d)", c.StatsWorkerCount))
	}
	if c.StatsQueueSize < 1 {
		errs = append(errs, fmt.Errorf("STATS_QUEUE_SIZE must be at least 1 (got %d)", c.StatsQueueSize))
	}
	if c.AIMoveTimeoutMS < 1 || c.AIMoveTimeoutMS > 60000 {
		errs = append(errs, fmt.Errorf("AI_MOVE_TIMEOUT_MS must be between 1 and 60000 (got %d)", c.AIMoveTimeoutMS))
	}
	if c.PuzzleFile != "" {
		if _, err := os.Stat(c.PuzzleFile); err != nil {
			errs = append(errs, fmt.Errorf("PUZZLE_FILE not readable: %w", err))
		}
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
