package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/katalvlaran/joltage/machine"
)

var (
	// ErrMiss is returned by Get when no entry exists for the key.
	ErrMiss = errors.New("cache: miss")

	// ErrDSN is returned by Open for an unrecognised DSN.
	ErrDSN = errors.New("cache: unsupported dsn")
)

// Entry is one cached result.
type Entry struct {
	Total   int64   `json:"total"`
	Presses []int64 `json:"presses,omitempty"`
}

// Store is a result cache.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, e Entry) error
	Close() error
}

// Key returns the hex SHA-256 of part and the machine's canonical text.
func Key(m machine.Machine, part string) string {
	sum := sha256.Sum256([]byte(part + "\n" + m.String()))
	return hex.EncodeToString(sum[:])
}

// Open returns a Store for dsn: "memory", or a redis:// or rediss:// URL
// whose keys are scoped by namespace.
func Open(dsn, namespace string) (Store, error) {
	switch {
	case dsn == "memory":
		return NewMemory(), nil
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		opts, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("cache: invalid redis url: %w", err)
		}
		return NewRedis(opts, namespace)
	default:
		return nil, fmt.Errorf("%w: %q", ErrDSN, dsn)
	}
}
