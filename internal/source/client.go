// Package source reads job records from the third-party jobs endpoint.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

var (
	ErrStatus  = errors.New("jobs source returned non-2xx status")
	ErrPayload = errors.New("jobs source payload not recognized")
)

const (
	DefaultTimeout      = 20 * time.Second
	DefaultMaxBodyBytes = 8 << 20
	DefaultUserAgent    = "JobFinder/1.0 (+local)"
)

// Fetcher is what the job directory reads from.
type Fetcher interface {
	Fetch(ctx context.Context) ([]map[string]any, error)
}

type Config struct {
	URL          string
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
}

type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *HostLimiter
	log     *zap.Logger
}

// New builds a client. limiter and log may be nil.
func New(cfg Config, limiter *HostLimiter, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		log:     log,
	}
}

// Fetch performs one GET against the endpoint and returns its records.
func (c *Client) Fetch(ctx context.Context) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("jobs source request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, c.cfg.URL); err != nil {
			return nil, fmt.Errorf("jobs source rate limit: %w", err)
		}
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jobs source get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		c.log.Warn("[source] upstream status",
			zap.String("url", c.cfg.URL),
			zap.Int("status", res.StatusCode),
			zap.ByteString("body", snippet),
		)
		return nil, fmt.Errorf("status %d: %w", res.StatusCode, ErrStatus)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, c.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("jobs source read: %w", err)
	}
	if int64(len(body)) > c.cfg.MaxBodyBytes {
		return nil, fmt.Errorf("body exceeds %d bytes: %w", c.cfg.MaxBodyBytes, ErrPayload)
	}

	recs, err := ExtractRecords(body)
	if err != nil {
		fields := []zap.Field{
			zap.String("url", c.cfg.URL),
			zap.String("content_type", res.Header.Get("Content-Type")),
			zap.Error(err),
		}
		if title := htmlTitle(res.Header.Get("Content-Type"), body); title != "" {
			fields = append(fields, zap.String("html_title", title))
		}
		c.log.Warn("[source] payload rejected", fields...)
		return nil, err
	}

	c.log.Info("[source] fetched",
		zap.String("url", c.cfg.URL),
		zap.Int("records", len(recs)),
		zap.Int("bytes", len(body)),
		zap.Duration("took", time.Since(start)),
	)
	return recs, nil
}

// htmlTitle pulls the <title> out of an HTML body, which is what captive
// portals and proxy error pages usually send instead of JSON.
func htmlTitle(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if !strings.Contains(strings.ToLower(contentType), "html") &&
		(len(trimmed) == 0 || trimmed[0] != '<') {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
