package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimitStore counts hits per key inside a fixed window.
type RateLimitStore interface {
	Hit(ctx context.Context, key string) (int64, error)
}

type visitor struct {
	count       int64
	windowStart time.Time
}

// MemoryStore keeps counters in process memory. Fine for a single instance.
type MemoryStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	s := &MemoryStore{
		visitors: make(map[string]*visitor),
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	// Cleanup goroutine
	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				for ip, v := range s.visitors {
					if s.now().Sub(v.windowStart) > window {
						delete(s.visitors, ip)
					}
				}
				s.mu.Unlock()
			case <-s.stop:
				return
			}
		}
	}()

	return s
}

func (s *MemoryStore) Hit(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v, exists := s.visitors[key]
	if !exists || now.Sub(v.windowStart) >= s.window {
		s.visitors[key] = &visitor{count: 1, windowStart: now}
		return 1, nil
	}

	v.count++
	return v.count, nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// RedisStore shares counters between relay instances.
type RedisStore struct {
	client *redis.Client
	window time.Duration
	prefix string
}

func NewRedisStore(client *redis.Client, window time.Duration) *RedisStore {
	return &RedisStore{client: client, window: window, prefix: "ratelimit:chat:"}
}

func (s *RedisStore) Hit(ctx context.Context, key string) (int64, error) {
	k := s.prefix + key
	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, k, s.window).Err(); err != nil {
			return count, fmt.Errorf("failed to set rate counter expiry: %w", err)
		}
	}
	return count, nil
}

type RateLimiter struct {
	store  RateLimitStore
	limit  int
	logger zerolog.Logger
}

func NewRateLimiter(store RateLimitStore, limit int, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  limit,
		logger: logger,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		count, err := rl.store.Hit(r.Context(), clientKey(r))
		if err != nil {
			// Fail open.
			rl.logger.Warn().Err(err).Msg("Rate limiter store unavailable")
			next.ServeHTTP(w, r)
			return
		}

		if count > int64(rl.limit) {
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
