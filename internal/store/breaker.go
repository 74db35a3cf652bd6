package store

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/genetic-risk-server/internal/domain"
)

// BreakerStore decorates a SessionStore with a circuit breaker so a failing
// backend degrades to fast store errors instead of piling up timeouts.
type BreakerStore struct {
	inner   domain.SessionStore
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

// NewBreakerStore wraps the store. The breaker opens after five consecutive
// failures and probes again after 30 seconds.
func NewBreakerStore(inner domain.SessionStore, logger *logrus.Logger) *BreakerStore {
	settings := gobreaker.Settings{
		Name:    "session-store",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Session store circuit breaker state changed")
		},
	}

	return &BreakerStore{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

func (s *BreakerStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.inner.Put(ctx, key, value, ttl)
	})
	if err != nil {
		return wrapBreakerErr("put", err)
	}
	return nil
}

func (s *BreakerStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	type result struct {
		value []byte
		found bool
	}
	out, err := s.breaker.Execute(func() (interface{}, error) {
		value, found, err := s.inner.Get(ctx, key)
		return result{value: value, found: found}, err
	})
	if err != nil {
		return nil, false, wrapBreakerErr("get", err)
	}
	r := out.(result)
	return r.value, r.found, nil
}

func (s *BreakerStore) Delete(ctx context.Context, key string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.inner.Delete(ctx, key)
	})
	if err != nil {
		return wrapBreakerErr("delete", err)
	}
	return nil
}

func wrapBreakerErr(op string, err error) error {
	var se *domain.StoreError
	if errors.As(err, &se) {
		return err
	}
	return domain.NewStoreError(op, err)
}
