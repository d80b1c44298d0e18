package weather

import (
	"context"
	"errors"
)

// ErrUpstreamNotFound is wrapped by fetchers when the upstream has no document
// for the requested path.
var ErrUpstreamNotFound = errors.New("upstream observation resource not found")

// Fetcher abstracts the upstream observation source (e.g. the BOM JSON feed).
type Fetcher interface {
	Fetch(ctx context.Context, relativePath string) (*Response, error)
}

// Store is the contract the in-memory record store must satisfy.
type Store interface {
	Save(stationID int, records []Record)
	Get(stationID int) ([]Record, bool)
}
