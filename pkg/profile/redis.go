package profile

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"time"

	"github.com/avast/retry-go"
	"github.com/redis/go-redis/v9"

	perrors "github.com/vnykmshr/pantry/pkg/common/errors"
	"github.com/vnykmshr/pantry/pkg/common/validation"
	"github.com/vnykmshr/pantry/pkg/ingredient"
)

// RedisConfig holds configuration for a RedisStore.
type RedisConfig struct {
	// Client is the Redis connection used for all operations. It should set
	// ContextTimeoutEnabled so that Timeout also bounds socket reads.
	Client redis.UniversalClient

	// Prefix namespaces every key written by the store.
	Prefix string

	// Timeout bounds each attempt of a store operation.
	Timeout time.Duration

	// Attempts is the number of tries for an operation that timed out.
	Attempts uint

	// RetryDelay is the base backoff between attempts.
	RetryDelay time.Duration
}

// DefaultRedisConfig returns a RedisConfig without a client.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Prefix:     "pantry",
		Timeout:    500 * time.Millisecond,
		Attempts:   3,
		RetryDelay: 50 * time.Millisecond,
	}
}

// RedisStore keeps each consumer's allergens in a Redis set, plus an index
// set of consumer names.
type RedisStore struct {
	client     redis.UniversalClient
	prefix     string
	timeout    time.Duration
	attempts   uint
	retryDelay time.Duration
}

// NewRedisStore creates a RedisStore from config.
func NewRedisStore(config RedisConfig) (*RedisStore, error) {
	if err := validation.ValidateNotNil(module, "client", config.Client); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty(module, "prefix", config.Prefix); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveDuration(module, "timeout", config.Timeout); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive(module, "attempts", int(config.Attempts)); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveDuration(module, "retry_delay", config.RetryDelay); err != nil {
		return nil, err
	}

	return &RedisStore{
		client:     config.Client,
		prefix:     config.Prefix,
		timeout:    config.Timeout,
		attempts:   config.Attempts,
		retryDelay: config.RetryDelay,
	}, nil
}

// do runs fn with a per-attempt timeout, retrying only timeouts.
func (r *RedisStore) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return retry.Do(
		func() error {
			attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()
			if err := fn(attemptCtx); err != nil {
				return wrapRedisError(op, err)
			}
			return nil
		},
		retry.Attempts(r.attempts),
		retry.Delay(r.retryDelay),
		retry.RetryIf(perrors.IsRetryable),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
}

func (r *RedisStore) indexKey() string {
	return r.prefix + ":consumers"
}

func (r *RedisStore) consumerKey(consumer string) string {
	return r.prefix + ":consumer:" + consumer
}

func (r *RedisStore) Allergens(ctx context.Context, consumer string) (*ingredient.AllergenSet, error) {
	if err := validateConsumer(consumer); err != nil {
		return nil, err
	}

	var exists *redis.BoolCmd
	var members *redis.StringSliceCmd
	err := r.do(ctx, "Allergens", func(ctx context.Context) error {
		_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			exists = pipe.SIsMember(ctx, r.indexKey(), consumer)
			members = pipe.SMembers(ctx, r.consumerKey(consumer))
			return nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if !exists.Val() {
		return nil, perrors.NewOperationError(module, "Allergens", perrors.ErrNotFound).WithContext(consumer)
	}
	return ingredient.NewAllergenSet(members.Val()...), nil
}

func (r *RedisStore) Save(ctx context.Context, consumer string, allergens *ingredient.AllergenSet) error {
	if err := validateSave(consumer, allergens); err != nil {
		return err
	}

	key := r.consumerKey(consumer)
	return r.do(ctx, "Save", func(ctx context.Context) error {
		_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if allergens.Len() > 0 {
				pipe.SAdd(ctx, key, toArgs(allergens.Names())...)
			}
			pipe.SAdd(ctx, r.indexKey(), consumer)
			return nil
		})
		return err
	})
}

func (r *RedisStore) Delete(ctx context.Context, consumer string) error {
	if err := validateConsumer(consumer); err != nil {
		return err
	}

	var removed *redis.IntCmd
	err := r.do(ctx, "Delete", func(ctx context.Context) error {
		_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, r.consumerKey(consumer))
			removed = pipe.SRem(ctx, r.indexKey(), consumer)
			return nil
		})
		return err
	})
	if err != nil {
		return err
	}
	if removed.Val() == 0 {
		return perrors.NewOperationError(module, "Delete", perrors.ErrNotFound).WithContext(consumer)
	}
	return nil
}

func (r *RedisStore) Consumers(ctx context.Context) ([]string, error) {
	var consumers []string
	err := r.do(ctx, "Consumers", func(ctx context.Context) error {
		var err error
		consumers, err = r.client.SMembers(ctx, r.indexKey()).Result()
		return err
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(consumers)
	return consumers, nil
}

func toArgs(names []string) []interface{} {
	args := make([]interface{}, len(names))
	for i, name := range names {
		args[i] = name
	}
	return args
}

func wrapRedisError(op string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		err = fmt.Errorf("%w: %v", perrors.ErrTimeout, err)
	}
	return perrors.NewOperationError(module, op, err).WithContext("redis")
}
