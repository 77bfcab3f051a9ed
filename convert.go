package mdpdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Option configures conversion behavior.
type Option func(*convertConfig)

type convertConfig struct {
	keepFrontMatter bool
}

// WithFrontMatter keeps or strips a leading front matter block. The
// default strips it.
func WithFrontMatter(keep bool) Option {
	return func(cfg *convertConfig) {
		cfg.keepFrontMatter = keep
	}
}

// ConvertRequest configures Convert.
type ConvertRequest struct {
	Source  string
	Table   StyleTable
	Options []Option
}

// Convert runs the full pipeline: validate and scan the source, build
// the token tree, and emit the styled element sequence. A nil Table
// uses the built-in defaults.
func Convert(req ConvertRequest) ([]Element, error) {
	var cfg convertConfig
	for _, opt := range req.Options {
		opt(&cfg)
	}
	source := req.Source
	if !cfg.keepFrontMatter {
		source = StripFrontMatter(source)
	}
	units, err := Scan(source)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	root, err := Build(units)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	return BuildDocument(root, req.Table), nil
}

// Fetch retrieves Markdown over HTTP(S). A nil client uses
// http.DefaultClient.
func Fetch(ctx context.Context, url string, client *http.Client) (string, error) {
	if url == "" {
		return "", fmt.Errorf("fetch: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: build request: %w", err)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return "", fmt.Errorf("fetch: unsupported scheme %q", req.URL.Scheme)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch: status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch: read body: %w", err)
	}
	return string(body), nil
}
