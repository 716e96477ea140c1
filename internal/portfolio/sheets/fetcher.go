package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetcher returns the raw CSV text of one table.
type Fetcher interface {
	Fetch(ctx context.Context, table Table) (string, error)
}

const defaultMaxBodyBytes = 8 << 20

// ErrBodyTooLarge is returned when a tab exceeds the configured size.
var ErrBodyTooLarge = errors.New("sheet body too large")

// HTTPFetcher downloads tabs of a published ("publish to web") spreadsheet.
// It does not retry; callers fall back to local data on error.
type HTTPFetcher struct {
	baseURL string
	tabs    Tabs
	client  *http.Client
	limiter *rate.Limiter
	maxBody int64
	log     *zap.Logger
}

type HTTPFetcherConfig struct {
	BaseURL string
	Tabs    Tabs
	Timeout time.Duration
	// RateLimit bounds outbound requests per second; zero disables limiting.
	RateLimit rate.Limit
	Burst     int
	// MaxBodyBytes caps a tab's size; zero means 8 MiB.
	MaxBodyBytes int64
}

func NewHTTPFetcher(cfg HTTPFetcherConfig, log *zap.Logger) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPFetcher{
		baseURL: cfg.BaseURL,
		tabs:    cfg.Tabs,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		maxBody: cfg.MaxBodyBytes,
		log:     log,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, table Table) (string, error) {
	gid, ok := f.tabs[table]
	if !ok {
		return "", fmt.Errorf("%w: %s has no tab configured", ErrUnknownTable, table)
	}
	u, err := TabURL(f.baseURL, gid)
	if err != nil {
		return "", err
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit %s: %w", table, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build request %s: %w", table, err)
	}
	req.Header.Set("Accept", "text/csv")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", table, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", table, err)
	}
	if int64(len(body)) > f.maxBody {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, table, f.maxBody)
	}

	f.log.Debug("sheet fetched",
		zap.String("table", string(table)),
		zap.Int("bytes", len(body)),
		zap.Duration("latency", time.Since(start)))
	return string(body), nil
}
