package store

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/i474232898/station-observations/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory store of the last observations
// fetched per station. Entries expire after maxAge.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a new MemoryStore. maxAge must be positive; callers
// that do not want caching should not construct a store at all.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: cache.New(maxAge, maxAge*2),
	}
}

func key(stationID int) string {
	return strconv.Itoa(stationID)
}

// Save replaces the records held for a station and resets its expiry.
func (s *MemoryStore) Save(stationID int, records []weather.Record) {
	snapshot := make([]weather.Record, len(records))
	copy(snapshot, records)
	s.cache.Set(key(stationID), snapshot, cache.DefaultExpiration)
}

// Get returns the records held for a station, if they have not expired.
func (s *MemoryStore) Get(stationID int) ([]weather.Record, bool) {
	v, ok := s.cache.Get(key(stationID))
	if !ok {
		return nil, false
	}
	records, ok := v.([]weather.Record)
	if !ok {
		return nil, false
	}
	out := make([]weather.Record, len(records))
	copy(out, records)
	return out, true
}

// Len returns the number of stations held, including expired entries not yet evicted.
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}

// Flush drops every entry.
func (s *MemoryStore) Flush() {
	s.cache.Flush()
}
