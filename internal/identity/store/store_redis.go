package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fayda/internal/identity/metrics"
	"fayda/internal/identity/models"
)

const (
	// Redis key prefix for registry records
	registryKeyPrefix = "fayda:registry:"

	resetScanCount = 500
)

// RedisStore is a Redis-backed registry shared by every server instance.
// Records never expire.
type RedisStore struct {
	client  *redis.Client
	metrics *metrics.Metrics
}

// NewRedis constructs a Redis-backed registry store.
func NewRedis(client *redis.Client, metrics *metrics.Metrics) *RedisStore {
	return &RedisStore{client: client, metrics: metrics}
}

type redisRecord struct {
	FaydaID      string    `json:"fayda_id"`
	FullName     string    `json:"full_name"`
	Region       string    `json:"region"`
	BirthYear    int       `json:"birth_year"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (s *RedisStore) Find(ctx context.Context, faydaID string) (*models.RegistryRecord, error) {
	defer s.observe("find", time.Now())
	payload, err := s.client.Get(ctx, registryKeyPrefix+faydaID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find registry record: %w", err)
	}
	return decodeRecord(payload)
}

// Register uses SETNX so only the first writer binds the ID.
func (s *RedisStore) Register(ctx context.Context, record *models.RegistryRecord) (*models.RegistryRecord, bool, error) {
	if record == nil {
		return nil, false, errRecordRequired
	}
	payload, err := json.Marshal(redisRecord{
		FaydaID:      record.FaydaID,
		FullName:     record.FullName,
		Region:       record.Region,
		BirthYear:    record.BirthYear,
		RegisteredAt: record.RegisteredAt,
	})
	if err != nil {
		return nil, false, fmt.Errorf("encode registry record: %w", err)
	}

	start := time.Now()
	created, err := s.client.SetNX(ctx, registryKeyPrefix+record.FaydaID, payload, 0).Result()
	s.observe("register", start)
	if err != nil {
		return nil, false, fmt.Errorf("register registry record: %w", err)
	}
	if created {
		stored := *record
		return &stored, true, nil
	}

	existing, err := s.Find(ctx, record.FaydaID)
	if err != nil {
		return nil, false, fmt.Errorf("read conflicting registry record: %w", err)
	}
	return existing, false, nil
}

// Reset deletes every registry key, scanning in batches.
func (s *RedisStore) Reset(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, registryKeyPrefix+"*", resetScanCount).Iterator()
	pipe := s.client.Pipeline()
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan registry keys: %w", err)
	}
	if pipe.Len() == 0 {
		return nil
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("reset registry: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Backend() string {
	return BackendRedis
}

func (s *RedisStore) observe(op string, start time.Time) {
	s.metrics.ObserveStoreLatency(BackendRedis, op, time.Since(start))
}

func decodeRecord(payload []byte) (*models.RegistryRecord, error) {
	var r redisRecord
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decode registry record: %w", err)
	}
	return &models.RegistryRecord{
		FaydaID:      r.FaydaID,
		FullName:     r.FullName,
		Region:       r.Region,
		BirthYear:    r.BirthYear,
		RegisteredAt: r.RegisteredAt,
	}, nil
}
