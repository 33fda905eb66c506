package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/artifact"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "plume:"

// Store implements ports.ResultStore using Redis.
// Artifacts are stored as documents under <prefix>run:<label> and indexed in
// the sorted set <prefix>runs, scored by expiry.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of stored artifacts. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromURL creates a store from a redis:// URL.
func NewFromURL(url string, opts ...Option) (*Store, error) {
	options, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(options), opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(label string) string {
	return s.prefix + "run:" + label
}

func (s *Store) indexKey() string {
	return s.prefix + "runs"
}

// Location returns the key the artifact of label is stored under.
func (s *Store) Location(label string) string {
	return "redis://" + s.key(label)
}

// Save persists the artifact and indexes its label.
func (s *Store) Save(ctx context.Context, label string, result *domain.RunResult) error {
	if label == "" {
		return fmt.Errorf("%w: run label cannot be empty", domain.ErrArtifactIO)
	}
	data, err := artifact.Encode(result)
	if err != nil {
		return err
	}

	// Without a TTL the index score is a far-future date so the entry is never pruned.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(label), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: label})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: failed to save to redis: %w", domain.ErrArtifactIO, err)
	}
	return nil
}

// Load retrieves the artifact from Redis.
func (s *Store) Load(ctx context.Context, label string) (*domain.RunResult, error) {
	val, err := s.client.Get(ctx, s.key(label)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %q", domain.ErrRunNotFound, label)
		}
		return nil, fmt.Errorf("%w: failed to get from redis: %w", domain.ErrArtifactIO, err)
	}

	result, err := artifact.Decode(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.key(label), err)
	}
	return result, nil
}

// Delete removes the artifact and its index entry.
func (s *Store) Delete(ctx context.Context, label string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(label))
	pipe.ZRem(ctx, s.indexKey(), label)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: failed to delete from redis: %w", domain.ErrArtifactIO, err)
	}
	return nil
}

// List returns the indexed labels, pruning entries whose artifacts have expired.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to prune expired runs: %w", domain.ErrArtifactIO, err)
	}

	labels, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list runs: %w", domain.ErrArtifactIO, err)
	}
	return labels, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
