package cache

import "time"

// Options selects and configures the cache backend.
type Options struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string

	// Prefix is the Redis key prefix.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration
}

// New creates a cache from the given options: Redis when a URL is
// configured, in-memory otherwise.
func New(opts Options) (Cache, error) {
	if opts.DefaultTTL == 0 {
		opts.DefaultTTL = time.Hour
	}

	if opts.RedisURL != "" {
		return NewRedisCache(RedisOptions{
			URL:        opts.RedisURL,
			Prefix:     opts.Prefix,
			DefaultTTL: opts.DefaultTTL,
		})
	}

	return NewMemoryCache(opts.DefaultTTL), nil
}
