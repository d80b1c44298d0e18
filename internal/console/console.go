// Package console implements the interactive client that asks the observation
// API for a station's average temperature.
package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/station-observations/internal/resilience"
	"github.com/i474232898/station-observations/internal/weather"
)

var (
	// ErrNotFound is returned when the API has no data for the station.
	ErrNotFound = errors.New("no record found for station")
	// ErrConnectionRefused is returned when nothing is listening at the API URL.
	ErrConnectionRefused = errors.New("connection refused")
)

// Client calls the average-temperature endpoint.
type Client struct {
	endpoint string
	httpCfg  resilience.HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// NewClient creates a client for apiURL+path. Requests are not retried and the
// breaker never opens; the user is at the prompt and can simply try again.
func NewClient(httpClient *http.Client, apiURL, path string) *Client {
	return &Client{
		endpoint: strings.TrimRight(apiURL, "/") + path,
		httpCfg: resilience.HTTPClientConfig{
			Client: httpClient,
			Backoff: resilience.BackoffConfig{
				MaxRetries:      0,
				InitialInterval: 100 * time.Millisecond,
			},
		},
		circuit: resilience.NewInteractiveBreaker("console"),
	}
}

// AverageTemperature fetches the average temperature of stationID.
func (c *Client) AverageTemperature(ctx context.Context, stationID string) (*weather.AverageTemperature, error) {
	buildRequest := func() (*http.Request, error) {
		u := c.endpoint + "?" + url.Values{"observationStationId": {stationID}}.Encode()
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := resilience.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return nil, fmt.Errorf("%w: %v", ErrConnectionRefused, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	var avg weather.AverageTemperature
	if err := json.NewDecoder(resp.Body).Decode(&avg); err != nil {
		return nil, fmt.Errorf("decode average temperature: %w", err)
	}
	return &avg, nil
}

// Prompter runs the read-query-print loop.
type Prompter struct {
	client         *Client
	defaultStation string
	apiURL         string
	in             *bufio.Scanner
	out            io.Writer
}

// NewPrompter wires a Prompter to in and out.
func NewPrompter(client *Client, apiURL, defaultStation string, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		client:         client,
		defaultStation: defaultStation,
		apiURL:         apiURL,
		in:             bufio.NewScanner(in),
		out:            out,
	}
}

// Run loops until the user types exit, the input ends or ctx is cancelled.
func (p *Prompter) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprintf(p.out, "Please enter the observation station id to get the average temperature (default is %s). Enter 'exit' to quit:\n", p.defaultStation)
		if !p.in.Scan() {
			return p.in.Err()
		}

		input := strings.TrimSpace(p.in.Text())
		if strings.EqualFold(input, "exit") {
			return nil
		}

		stationID := input
		if stationID == "" {
			stationID = p.defaultStation
		}

		p.report(ctx, stationID)
	}
}

func (p *Prompter) report(ctx context.Context, stationID string) {
	avg, err := p.client.AverageTemperature(ctx, stationID)
	switch {
	case errors.Is(err, ErrConnectionRefused):
		fmt.Fprintf(p.out, "Connection was actively refused. Check if the server is running on %s.\n", p.apiURL)
		return
	case errors.Is(err, ErrNotFound):
		fmt.Fprintf(p.out, "The resource was not found for observationStationId: %s\n", stationID)
		fmt.Fprintln(p.out, "No temperature data available.")
		return
	case err != nil:
		fmt.Fprintf(p.out, "An error occurred: %v\n", err)
		fmt.Fprintln(p.out, "No temperature data available.")
		return
	}

	if avg.LocationName == "" {
		return
	}
	fmt.Fprintf(p.out, "Location: %s, Average Temperature: %s°C\n", avg.LocationName, formatTemperature(avg.AirTemp))
}

func formatTemperature(t *float64) string {
	if t == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*t, 'f', -1, 64)
}
