package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/station-observations/internal/weather"
)

func station(id int, temp float64) weather.Record {
	return weather.Record{WMO: &id, AirTemp: &temp}
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	_, ok := s.Get(94672)
	assert.False(t, ok)

	s.Save(94672, []weather.Record{station(94672, 10), station(94672, 12)})

	records, ok := s.Get(94672)
	require.True(t, ok)
	assert.Len(t, records, 2)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreSaveReplaces(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	s.Save(1, []weather.Record{station(1, 10)})
	s.Save(1, []weather.Record{station(1, 11), station(1, 12), station(1, 13)})

	records, ok := s.Get(1)
	require.True(t, ok)
	assert.Len(t, records, 3)
}

func TestMemoryStoreEmptyResultIsCached(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	s.Save(5, nil)

	records, ok := s.Get(5)
	assert.True(t, ok)
	assert.Empty(t, records)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)

	s.Save(1, []weather.Record{station(1, 10)})
	time.Sleep(40 * time.Millisecond)

	_, ok := s.Get(1)
	assert.False(t, ok)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	in := []weather.Record{station(1, 10)}
	s.Save(1, in)
	in[0] = station(2, 99)

	out, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1, *out[0].WMO)

	out[0] = station(3, 0)
	again, _ := s.Get(1)
	assert.Equal(t, 1, *again[0].WMO)
}

func TestMemoryStoreFlush(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	s.Save(1, nil)
	s.Save(2, nil)

	s.Flush()
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.Save(id%4, []weather.Record{station(id, float64(id))})
			s.Get(id % 4)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, s.Len())
}
