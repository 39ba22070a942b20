// Package replycache caches answer sets from forwarded questions in a
// bounded LRU so repeated questions skip the upstream round trip until
// their TTL runs out.
package replycache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fandns/fandns/internal/dns/common/clock"
	"github.com/fandns/fandns/internal/dns/domain"
	"github.com/fandns/fandns/internal/dns/services/proxy"
)

// entry holds one cached answer set and the instant it stops being valid.
type entry struct {
	answers   []domain.ResourceRecord
	expiresAt time.Time
}

// Cache is a TTL-aware LRU keyed by question cache key. Expiry uses the
// injected clock so tests can advance time deterministically.
type Cache struct {
	lru   *lru.Cache[string, entry]
	clock clock.Clock
}

// New returns a Cache bounded to size entries.
func New(size int, clk clock.Clock) (*Cache, error) {
	backing, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Cache{lru: backing, clock: clk}, nil
}

// Get returns the cached answers for key if present and not expired.
// Expired entries are evicted on access.
func (c *Cache) Get(key string) ([]domain.ResourceRecord, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.answers, true
}

// Set stores an answer set under key, valid for the smallest TTL among the
// answers. Empty answer sets and zero TTLs are not cached.
func (c *Cache) Set(key string, answers []domain.ResourceRecord) {
	if len(answers) == 0 {
		return
	}
	ttl := answers[0].TTL
	for _, rr := range answers[1:] {
		if rr.TTL < ttl {
			ttl = rr.TTL
		}
	}
	if ttl == 0 {
		return
	}
	c.lru.Add(key, entry{
		answers:   answers,
		expiresAt: c.clock.Now().Add(time.Duration(ttl) * time.Second),
	})
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

var _ proxy.ReplyCache = (*Cache)(nil)
