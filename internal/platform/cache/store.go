package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/nhl-due-tracker/internal/platform/logging"
	"golang.org/x/sync/singleflight"
)

// Backend stores raw payloads with a TTL.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Store is a read-through cache. Backend failures are logged and treated as misses.
type Store struct {
	backend Backend
	ttl     time.Duration
	prefix  string
	logger  *logging.Logger
	flight  singleflight.Group
}

func NewStore(backend Backend, ttl time.Duration, prefix string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		backend: backend,
		ttl:     ttl,
		prefix:  prefix,
		logger:  logger,
	}
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) ([]byte, error)) ([]byte, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if s == nil || s.backend == nil || key == "" {
		return loader(ctx)
	}

	fullKey := s.prefix + key
	if value, ok := s.lookup(ctx, fullKey); ok {
		return value, nil
	}

	out, err, _ := s.flight.Do(fullKey, func() (any, error) {
		if cached, ok := s.lookup(ctx, fullKey); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := s.backend.Set(ctx, fullKey, loaded, s.ttl); setErr != nil {
			s.logger.WarnContext(ctx, "cache write failed", "key", fullKey, "error", setErr)
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	value, _ := out.([]byte)
	return value, nil
}

func (s *Store) lookup(ctx context.Context, key string) ([]byte, bool) {
	value, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return nil, false
	}
	return value, ok
}
