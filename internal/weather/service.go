package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/station-observations/internal/metrics"
)

// StationPlaceholder is replaced by the station id in the relative path template.
const StationPlaceholder = "<WMO>"

// Options configures how the service addresses the upstream feed.
type Options struct {
	RelativePath     string
	DefaultStationID int
}

// Service resolves stations, fetches their observations and derives views from them.
type Service struct {
	fetcher Fetcher
	store   Store
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService creates a new Service. store and m may be nil.
func NewService(fetcher Fetcher, store Store, opts Options, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher: fetcher,
		store:   store,
		opts:    opts,
		logger:  logger,
		metrics: m,
	}
}

// DefaultStationID returns the station used when a caller does not name one.
func (s *Service) DefaultStationID() int {
	return s.opts.DefaultStationID
}

// BuildRelativePath substitutes stationID into the upstream path template.
func BuildRelativePath(template string, stationID int) string {
	return strings.ReplaceAll(template, StationPlaceholder, strconv.Itoa(stationID))
}

// GetObservationData returns the observations of the requested (or default) station.
// A missing upstream resource yields nil records and a nil error.
func (s *Service) GetObservationData(ctx context.Context, stationID *int) ([]Record, error) {
	id := ResolveStation(stationID, s.opts.DefaultStationID)

	if s.store != nil {
		records, ok := s.store.Get(id)
		s.metrics.ObserveCacheLookup(ok)
		if ok {
			s.logger.Debug("serving observations from store", "station_id", id, "records", len(records))
			return records, nil
		}
	}

	records, err := s.fetch(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUpstreamNotFound) {
			s.logger.Info("the resource was not found", "station_id", id)
			return nil, nil
		}
		s.logger.Error("failed to get observation data", "station_id", id, "err", err)
		return nil, err
	}
	return records, nil
}

// GetAverageTemperature returns the mean air temperature of the requested (or
// default) station, or nil when no observation belongs to it.
func (s *Service) GetAverageTemperature(ctx context.Context, stationID *int) (*AverageTemperature, error) {
	id := ResolveStation(stationID, s.opts.DefaultStationID)

	records, err := s.GetObservationData(ctx, &id)
	if err != nil {
		return nil, err
	}
	return AverageFor(records, id), nil
}

// FilterFields projects records onto the fields named in fieldSpec.
func (s *Service) FilterFields(records []Record, fieldSpec string) []Projection {
	out := Project(records, fieldSpec)
	s.metrics.ObserveProjection(len(out))
	return out
}

// Refresh fetches the station's observations from upstream and replaces what
// the store holds for it.
func (s *Service) Refresh(ctx context.Context, stationID int) error {
	_, err := s.fetch(ctx, stationID)
	return err
}

// fetch loads the station's document and saves the records when a store is configured.
func (s *Service) fetch(ctx context.Context, id int) ([]Record, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("no observation fetcher configured")
	}

	path := BuildRelativePath(s.opts.RelativePath, id)

	start := time.Now()
	resp, err := s.fetcher.Fetch(ctx, path)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, ErrUpstreamNotFound) {
			s.metrics.ObserveFetch(metrics.ResultNotFound, elapsed)
			return nil, err
		}
		s.metrics.ObserveFetch(metrics.ResultError, elapsed)
		return nil, fmt.Errorf("fetch observations for station %d: %w", id, err)
	}
	s.metrics.ObserveFetch(metrics.ResultOK, elapsed)

	var records []Record
	if resp != nil {
		records = resp.Observations.Data
	}

	if s.store != nil {
		s.store.Save(id, records)
	}
	s.logger.Debug("fetched observations", "station_id", id, "path", path, "records", len(records))
	return records, nil
}
