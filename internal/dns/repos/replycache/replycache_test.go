package replycache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandns/fandns/internal/dns/common/clock"
	"github.com/fandns/fandns/internal/dns/domain"
)

func answersWithTTLs(ttls ...uint32) []domain.ResourceRecord {
	answers := make([]domain.ResourceRecord, 0, len(ttls))
	for _, ttl := range ttls {
		answers = append(answers, domain.ResourceRecord{
			Name:  domain.Name{"example", "com"},
			Type:  domain.QTypeA,
			Class: domain.QClassIN,
			TTL:   ttl,
			Data:  []byte{192, 0, 2, 1},
		})
	}
	return answers
}

func TestCacheSetAndGet(t *testing.T) {
	clk := clock.NewMockClock(time.Unix(1_700_000_000, 0))
	cache, err := New(8, clk)
	require.NoError(t, err)

	cache.Set("example.com|A|IN", answersWithTTLs(300))

	got, ok := cache.Get("example.com|A|IN")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, []byte{192, 0, 2, 1}, got[0].Data)

	_, ok = cache.Get("other.com|A|IN")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	clk := clock.NewMockClock(time.Unix(1_700_000_000, 0))
	cache, err := New(8, clk)
	require.NoError(t, err)

	cache.Set("example.com|A|IN", answersWithTTLs(60))

	clk.Advance(59 * time.Second)
	_, ok := cache.Get("example.com|A|IN")
	assert.True(t, ok, "entry is valid just inside the TTL")

	clk.Advance(1 * time.Second)
	_, ok = cache.Get("example.com|A|IN")
	assert.False(t, ok, "entry expires exactly at the TTL boundary")
	assert.Zero(t, cache.Len(), "expired entry is evicted on access")
}

func TestCacheUsesSmallestTTL(t *testing.T) {
	clk := clock.NewMockClock(time.Unix(1_700_000_000, 0))
	cache, err := New(8, clk)
	require.NoError(t, err)

	cache.Set("example.com|A|IN", answersWithTTLs(300, 30, 600))

	clk.Advance(31 * time.Second)
	_, ok := cache.Get("example.com|A|IN")
	assert.False(t, ok, "the smallest answer TTL bounds the entry")
}

func TestCacheSkipsEmptyAndZeroTTL(t *testing.T) {
	cache, err := New(8, clock.NewMockClock(time.Unix(1_700_000_000, 0)))
	require.NoError(t, err)

	cache.Set("empty", nil)
	cache.Set("zero", answersWithTTLs(0))
	cache.Set("mixed-zero", answersWithTTLs(300, 0))

	assert.Zero(t, cache.Len())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	clk := clock.NewMockClock(time.Unix(1_700_000_000, 0))
	cache, err := New(2, clk)
	require.NoError(t, err)

	cache.Set("a", answersWithTTLs(300))
	cache.Set("b", answersWithTTLs(300))
	cache.Get("a") // refresh a's recency
	cache.Set("c", answersWithTTLs(300))

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("a")
	assert.True(t, ok)
	_, ok = cache.Get("b")
	assert.False(t, ok, "b was least recently used")
}

func TestCacheBoundedUnderChurn(t *testing.T) {
	cache, err := New(4, clock.NewMockClock(time.Unix(1_700_000_000, 0)))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), answersWithTTLs(300))
	}
	assert.Equal(t, 4, cache.Len())
}
