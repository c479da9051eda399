package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pfrederiksen/sportify/internal/logger"
)

const (
	ScheduleURL = "http://time4tv.top/schedule.php"
	UserAgent   = "sportify/1.0 (github.com/pfrederiksen/sportify)"
	Timeout     = 30 * time.Second
)

// Fetcher downloads the schedule page with a single GET
type Fetcher struct {
	client *resty.Client
	url    string
}

// NewFetcher creates a Fetcher for url. Zero values fall back to the package defaults.
func NewFetcher(url, userAgent string, timeout time.Duration) *Fetcher {
	if url == "" {
		url = ScheduleURL
	}
	if userAgent == "" {
		userAgent = UserAgent
	}
	if timeout <= 0 {
		timeout = Timeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0)

	return &Fetcher{
		client: client,
		url:    url,
	}
}

// URL returns the page the fetcher downloads
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch returns the raw page body. Only transport failures are errors; a
// non-success status is logged and its body returned as-is.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.IsError() {
		logger.Warn("Schedule page returned a non-success status", logger.Fields{
			"url":    f.url,
			"status": resp.StatusCode(),
		})
	}

	return resp.Body(), nil
}
