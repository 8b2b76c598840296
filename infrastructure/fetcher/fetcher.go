// Package fetcher retrieves daily crime log pages from the public
// university police website.
package fetcher

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/campuslogs/crimelog/internal/config"
	"github.com/campuslogs/crimelog/internal/log"
	"github.com/go-resty/resty/v2"
)

const userAgent = "crimelog/1.0 (+https://github.com/campuslogs/crimelog)"

// FetchError reports a page retrieval failure after all retries were
// exhausted. StatusCode is zero for transport-level failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PageRequest identifies one page of the crime log listing. CampusFilter is
// the display name the source site expects (e.g. "University Park"), not the
// internal campus code. StartDate and EndDate bound the reported date,
// given as YYYY-MM-DD; the site's MM/DD/YYYY filter format is handled when
// the request is sent.
type PageRequest struct {
	CampusFilter string
	Page         int
	StartDate    string
	EndDate      string
}

// Fetcher is a polite HTTP client for the crime log site. Transient
// failures (network errors and 5xx responses) are retried with exponential
// backoff; client errors are returned immediately.
type Fetcher struct {
	client   *resty.Client
	baseURL  string
	interval time.Duration
	logger   *log.Logger
}

// NewFetcher creates a Fetcher from the application config.
func NewFetcher(cfg config.AppConfig, logger *log.Logger) *Fetcher {
	fetch := cfg.Fetch()

	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(fetch.Timeout())
	client.SetRetryCount(fetch.MaxRetries())
	client.SetRetryWaitTime(fetch.InitialDelay())
	client.SetRetryMaxWaitTime(retryMaxWait(fetch))
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return res.StatusCode() >= 500
	})

	return &Fetcher{
		client:   client,
		baseURL:  cfg.BaseURL(),
		interval: fetch.RequestInterval(),
		logger:   logger.With("component", "fetcher"),
	}
}

// FetchPage retrieves one listing page and returns the raw HTML body.
func (f *Fetcher) FetchPage(ctx context.Context, req PageRequest) (string, error) {
	params := map[string]string{
		"campus": req.CampusFilter,
		"page":   strconv.Itoa(req.Page),
	}
	if req.StartDate != "" {
		params["field_reported_date_value[min]"] = siteDate(req.StartDate)
	}
	if req.EndDate != "" {
		params["field_reported_date_value[max]"] = siteDate(req.EndDate)
	}

	f.logger.Debug("fetching page", "campus", req.CampusFilter, "page", req.Page)

	res, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(f.baseURL)
	if err != nil {
		return "", &FetchError{URL: f.baseURL, Err: err}
	}
	if res.IsError() {
		return "", &FetchError{URL: res.Request.URL, StatusCode: res.StatusCode()}
	}

	body := string(res.Body())
	if len(body) < 100 {
		return "", &FetchError{
			URL: res.Request.URL,
			Err: fmt.Errorf("response body too short (%d bytes)", len(body)),
		}
	}
	return body, nil
}

// retryMaxWait caps the retry backoff at the configured factor compounded
// over the full retry budget, so the last attempt never waits longer than
// the configured schedule allows.
func retryMaxWait(fetch config.FetchConfig) time.Duration {
	wait := float64(fetch.InitialDelay())
	for i := 0; i < fetch.MaxRetries(); i++ {
		wait *= fetch.BackoffFactor()
	}
	return time.Duration(wait)
}

// siteDate converts a YYYY-MM-DD bound into the MM/DD/YYYY form the site's
// date filter expects. Anything that does not parse is passed through
// unchanged.
func siteDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("01/02/2006")
}

// Pause sleeps for the configured inter-request interval, returning early
// if the context is cancelled.
func (f *Fetcher) Pause(ctx context.Context) error {
	if f.interval <= 0 {
		return nil
	}
	timer := time.NewTimer(f.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
