// Package redisstore keeps the board and run history in Redis
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
	"github.com/jakechorley/charge-nurse/pkg/db"
)

// DefaultKeyPrefix is used when no prefix is configured
const DefaultKeyPrefix = "charge-nurse"

// Store implements db.Database on a Redis client.
// The board is one JSON string; runs are a list appended in order.
type Store struct {
	c      *redis.Client
	prefix string
}

// NewClient creates a Redis client and checks the connection
func NewClient(ctx context.Context, addr, password string, database int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// New wraps a client. An empty prefix uses DefaultKeyPrefix.
func New(c *redis.Client, prefix string) *Store {
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{c: c, prefix: prefix}
}

func (s *Store) boardKey() string { return s.prefix + ":board" }
func (s *Store) runsKey() string  { return s.prefix + ":runs" }

// Ping checks that Redis is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.c.Close()
}

// GetBoard reads the saved board
func (s *Store) GetBoard(ctx context.Context) (*model.Snapshot, error) {
	val, err := s.c.Get(ctx, s.boardKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	return model.DecodeSnapshot(strings.NewReader(val))
}

// SaveBoard replaces the saved board
func (s *Store) SaveBoard(ctx context.Context, board model.Snapshot) error {
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	if err := s.c.Set(ctx, s.boardKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

// GetRuns returns all runs, oldest first
func (s *Store) GetRuns(ctx context.Context) ([]db.AssignmentRun, error) {
	vals, err := s.c.LRange(ctx, s.runsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}

	runs := make([]db.AssignmentRun, 0, len(vals))
	for _, val := range vals {
		var run db.AssignmentRun
		if err := json.Unmarshal([]byte(val), &run); err != nil {
			return nil, fmt.Errorf("failed to parse run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// InsertRun appends a run to the history
func (s *Store) InsertRun(ctx context.Context, run *db.AssignmentRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	if err := s.c.RPush(ctx, s.runsKey(), data).Err(); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

var _ db.Database = (*Store)(nil)
