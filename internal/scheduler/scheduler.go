package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher reloads the observations of one station.
type Refresher interface {
	Refresh(ctx context.Context, stationID int) error
}

// Scheduler periodically refreshes observations for the configured stations so
// requests are served from the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	stations  []int
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(stations []int, interval time.Duration, service Refresher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		stations:  stations,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.stations) == 0 {
		s.logger.Info("scheduler: no stations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every configured station concurrently and waits for all of them.
func (s *Scheduler) RunOnce() {
	s.logger.Debug("scheduler: running observation refresh job", "stations", len(s.stations))

	var wg sync.WaitGroup
	for _, id := range s.stations {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := s.service.Refresh(ctx, id); err != nil {
				s.logger.Warn("scheduler: refresh failed", "station_id", id, "err", err)
			}
		}(id)
	}
	wg.Wait()
	s.logger.Debug("scheduler: completed observation refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
