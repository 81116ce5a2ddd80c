package mem

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// DefaultVisitorIdle is how long a client's limiter is kept after its last request.
const DefaultVisitorIdle = 10 * time.Minute

type VisitorLimiterStore interface {
	// Allow reports whether the visitor identified by key may make a request now.
	Allow(key string) bool
}

// VisitorLimiters holds one token bucket per visitor. Buckets of visitors that
// stay idle longer than the configured window are evicted by go-cache.
type VisitorLimiters struct {
	mu       sync.Mutex
	visitors *cache.Cache
	limit    rate.Limit
	burst    int
}

func NewVisitorLimiters(rps float64, burst int, idle time.Duration) *VisitorLimiters {
	if idle <= 0 {
		idle = DefaultVisitorIdle
	}
	return &VisitorLimiters{
		visitors: cache.New(idle, idle/2),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (v *VisitorLimiters) Allow(key string) bool {
	return v.limiter(key).Allow()
}

// Len is the number of visitors currently tracked.
func (v *VisitorLimiters) Len() int {
	return v.visitors.ItemCount()
}

func (v *VisitorLimiters) limiter(key string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	if cached, found := v.visitors.Get(key); found {
		limiter := cached.(*rate.Limiter)
		// refresh the idle window
		v.visitors.Set(key, limiter, cache.DefaultExpiration)
		return limiter
	}

	limiter := rate.NewLimiter(v.limit, v.burst)
	v.visitors.Set(key, limiter, cache.DefaultExpiration)
	return limiter
}
