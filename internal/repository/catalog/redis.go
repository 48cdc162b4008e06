// Package catalog provides read-only access to the ERP table catalog.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/erpworks/tablescout/internal/domain"
)

// RedisConfig holds connection parameters for the Redis-backed catalog.
type RedisConfig struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore serves catalog queries from an in-memory snapshot loaded out
// of Redis hashes (<prefix>table:<id>). The catalog is reference data: it
// is loaded once at startup and never written by this service.
type RedisStore struct {
	client rueidis.Client
	prefix string
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot []domain.CatalogRecord
}

// NewRedis creates a Redis-backed catalog store.
func NewRedis(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &RedisStore{client: client, prefix: cfg.KeyPrefix, logger: logger}, nil
}

// Client exposes the underlying rueidis client so sibling repositories
// (the search-log sink) can share the connection.
func (s *RedisStore) Client() rueidis.Client {
	return s.client
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *RedisStore) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store responds or the timeout expires.
func (s *RedisStore) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for catalog: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Load scans all catalog hashes and replaces the in-memory snapshot.
func (s *RedisStore) Load(ctx context.Context) error {
	keys, err := s.scan(ctx, s.prefix+"table:*")
	if err != nil {
		return fmt.Errorf("scan catalog keys: %w", err)
	}

	records := make([]domain.CatalogRecord, 0, len(keys))
	if len(keys) > 0 {
		cmds := make([]rueidis.Completed, len(keys))
		for i, key := range keys {
			cmds[i] = s.client.B().Hgetall().Key(key).Build()
		}
		results := s.client.DoMulti(ctx, cmds...)
		for i, res := range results {
			fields, err := res.AsStrMap()
			if err != nil {
				return fmt.Errorf("read catalog hash %s: %w", keys[i], err)
			}
			id := strings.TrimPrefix(keys[i], s.prefix+"table:")
			records = append(records, recordFromHash(id, fields))
		}
	}

	s.mu.Lock()
	s.snapshot = records
	s.mu.Unlock()

	s.logger.Info("catalog loaded", zap.Int("records", len(records)))
	return nil
}

// Query evaluates a filter against the loaded snapshot.
func (s *RedisStore) Query(ctx context.Context, f domain.CatalogFilter) ([]domain.CatalogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	s.mu.RLock()
	snapshot := s.snapshot
	s.mu.RUnlock()

	if snapshot == nil {
		return nil, fmt.Errorf("%w: catalog not loaded", domain.ErrCatalogUnavailable)
	}
	return domain.ApplyFilter(snapshot, f), nil
}

// scan iterates keys matching a pattern.
func (s *RedisStore) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := s.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}
