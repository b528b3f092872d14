package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/qepting91/job-feed/internal/domain"
	"golang.org/x/time/rate"
)

// HTTPClient fetches pages from the jobs endpoint, one request at a time per interval
type HTTPClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    *url.URL
	userAgent  string
	logger     *slog.Logger
}

type pageResponse struct {
	Results json.RawMessage `json:"results"`
}

func NewHTTPClient(baseURL, userAgent string, interval, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url must be http or https: %q", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		baseURL:    u,
		userAgent:  userAgent,
		logger:     logger,
	}, nil
}

func (hc *HTTPClient) pageURL(page int) string {
	u := *hc.baseURL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

func (hc *HTTPClient) FetchPage(ctx context.Context, page int) ([]domain.RawPosting, error) {
	if err := hc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hc.pageURL(page), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", hc.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jobs api status: %d", resp.StatusCode)
	}

	var body pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}

	results := bytes.TrimSpace(body.Results)
	if len(results) == 0 || bytes.Equal(results, []byte("null")) {
		return nil, domain.ErrMalformedPage
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(results, &entries); err != nil {
		return nil, fmt.Errorf("page %d: %w", page, domain.ErrMalformedPage)
	}

	// Entries that are not objects are dropped here, so a page can yield fewer
	// postings than the API listed.
	postings := make([]domain.RawPosting, 0, len(entries))
	for i, e := range entries {
		var p domain.RawPosting
		if err := json.Unmarshal(e, &p); err != nil || p == nil {
			hc.logger.Warn("skipping non-object result", "page", page, "index", i)
			continue
		}
		postings = append(postings, p)
	}
	return postings, nil
}
