package data

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// massiveProvider implements Provider against Massive aggregate APIs
// using raw HTTP calls rather than the official SDK, with rate-limit
// retries and an optional secondary fallback.
type massiveProvider struct {
	// APIKey authenticates requests with Massive.
	APIKey string

	// Client is the HTTP client used for API requests.
	Client *http.Client

	// BaseURL is the root endpoint (e.g. https://api.massive.com).
	BaseURL string

	// secondary is an optional fallback provider.
	secondary Provider
}

// NewMassiveProvider constructs a Massive-backed data provider with
// sensible HTTP defaults (timeouts, pooling, HTTP/2, gzip).
func NewMassiveProvider(apiKey string) Provider {
	logger.Infof("initializing Massive data provider")

	return &massiveProvider{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				DisableCompression:    false, // must be false to enable gzip auto-decompression
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		BaseURL: "https://api.massive.com",
	}
}

func (massiveProv *massiveProvider) Secondary() Provider {
	return massiveProv.secondary
}

// massiveAggsResp is the Massive/Polygon-style aggregates response.
type massiveAggsResp struct {
	Ticker  string `json:"ticker"`
	Status  string `json:"status"`
	Results []struct {
		Open      float64 `json:"o"`
		Close     float64 `json:"c"`
		High      float64 `json:"h"`
		Low       float64 `json:"l"`
		Volume    float64 `json:"v"`
		Timestamp int64   `json:"t"` // epoch millis
	} `json:"results"`
}

// GetSpot returns the previous session's close for the underlying.
func (massiveProv *massiveProvider) GetSpot(underlying string) (float64, error) {
	logger.Debugf("fetching spot: %s", underlying)

	url := fmt.Sprintf(
		"%s/v2/aggs/ticker/%s/prev?adjusted=true&apiKey=%s",
		massiveProv.BaseURL,
		underlying,
		massiveProv.APIKey,
	)

	var body massiveAggsResp
	if err := massiveProv.getJSON(url, &body); err != nil {
		if massiveProv.secondary != nil {
			logger.Infof("spot fallback to secondary provider: %v", err)
			return massiveProv.secondary.GetSpot(underlying)
		}
		return 0, err
	}
	if len(body.Results) == 0 {
		return 0, fmt.Errorf("no spot data for %s", underlying)
	}
	return body.Results[0].Close, nil
}

// GetDailyCloses returns daily closing prices in ascending date order.
func (massiveProv *massiveProvider) GetDailyCloses(underlying string, fromDate, toDate time.Time) ([]float64, error) {
	const maxLimit = 50000

	logger.Debugf(
		"fetching daily closes: %s from=%s to=%s",
		underlying,
		fromDate.Format("2006-01-02"),
		toDate.Format("2006-01-02"),
	)

	url := fmt.Sprintf(
		"%s/v2/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&limit=%d&apiKey=%s",
		massiveProv.BaseURL,
		underlying,
		fromDate.Format("2006-01-02"),
		toDate.Format("2006-01-02"),
		maxLimit,
		massiveProv.APIKey,
	)

	var body massiveAggsResp
	if err := massiveProv.getJSON(url, &body); err != nil {
		if massiveProv.secondary != nil {
			logger.Infof("closes fallback to secondary provider: %v", err)
			return massiveProv.secondary.GetDailyCloses(underlying, fromDate, toDate)
		}
		return nil, err
	}

	logger.Tracef("closes received: %d records", len(body.Results))

	out := make([]float64, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, r.Close)
	}
	return out, nil
}

func (massiveProv *massiveProvider) getJSON(url string, v any) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", massiveProv.APIKey)

	resp, err := massiveProv.processGetRequest(req)
	if err != nil {
		return fmt.Errorf("massive api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("massive status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing massive response: %w", err)
	}
	return nil
}

// processGetRequest issues the request and retries on the per-minute
// rate limit by sleeping until the next minute boundary.
func (massiveProv *massiveProvider) processGetRequest(req *http.Request) (*http.Response, error) {
	for {
		resp, err := massiveProv.Client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 400 {
			return resp, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()

			now := time.Now()
			sleepDuration := time.Until(now.Truncate(time.Minute).Add(time.Minute))

			logger.Infof("rate limit hit, sleeping for %s", sleepDuration)
			time.Sleep(sleepDuration)
			continue
		}

		// Other failures are surfaced via the status check in getJSON.
		return resp, nil
	}
}
