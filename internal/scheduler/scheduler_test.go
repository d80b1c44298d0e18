package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRefresher struct {
	mu    sync.Mutex
	calls []int
	fail  map[int]bool
}

func (r *recordingRefresher) Refresh(ctx context.Context, stationID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, stationID)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("refresh called without deadline")
	}
	if r.fail[stationID] {
		return errors.New("upstream down")
	}
	return nil
}

func (r *recordingRefresher) stations() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]int(nil), r.calls...)
	sort.Ints(out)
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnceRefreshesEveryStation(t *testing.T) {
	r := &recordingRefresher{fail: map[int]bool{2: true}}
	s := New([]int{3, 1, 2}, time.Minute, r, quietLogger())

	s.RunOnce()

	assert.Equal(t, []int{1, 2, 3}, r.stations())
}

func TestStartWithoutStationsSchedulesNothing(t *testing.T) {
	r := &recordingRefresher{}
	s := New(nil, time.Minute, r, quietLogger())

	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, r.stations())
}

func TestStartRunsImmediately(t *testing.T) {
	r := &recordingRefresher{}
	s := New([]int{94672}, time.Hour, r, quietLogger())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return len(r.stations()) == 1
	}, time.Second, 10*time.Millisecond)
}
