package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// DefaultRedisKey is where RedisStore keeps the snapshot.
const DefaultRedisKey = "million_tracker:rates:latest"

// cachedRatesPayload is the JSON shape stored in Redis.
type cachedRatesPayload struct {
	Rates     map[domain.Currency]decimal.Decimal `json:"rates"`
	AsOf      time.Time                           `json:"asOf"`
	FetchedAt time.Time                           `json:"fetchedAt"`
	TTL       time.Duration                       `json:"ttl"`
}

// RedisStore shares the cached snapshot between replicas. The key expires
// together with the snapshot.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

var _ portsrepo.SnapshotStore = (*RedisStore)(nil)

// NewRedisStore creates a store writing to key; an empty key means DefaultRedisKey.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (domain.CachedRates, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CachedRates{}, false, nil
	}
	if err != nil {
		return domain.CachedRates{}, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	cached, err := decodeCachedRates(raw)
	if err != nil {
		return domain.CachedRates{}, false, err
	}
	return cached, true, nil
}

func (s *RedisStore) Store(ctx context.Context, cached domain.CachedRates) error {
	raw, err := encodeCachedRates(cached)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, raw, cached.TTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func encodeCachedRates(c domain.CachedRates) ([]byte, error) {
	return json.Marshal(cachedRatesPayload{
		Rates:     c.Snapshot.Rates(),
		AsOf:      c.Snapshot.AsOf(),
		FetchedAt: c.FetchedAt,
		TTL:       c.TTL,
	})
}

func decodeCachedRates(raw []byte) (domain.CachedRates, error) {
	var p cachedRatesPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.CachedRates{}, fmt.Errorf("decode cached rates: %w", err)
	}
	snapshot, err := domain.NewRateSnapshot(p.Rates, p.AsOf)
	if err != nil {
		return domain.CachedRates{}, fmt.Errorf("decode cached rates: %w", err)
	}
	return domain.CachedRates{Snapshot: snapshot, FetchedAt: p.FetchedAt, TTL: p.TTL}, nil
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}
