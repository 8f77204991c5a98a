package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// maxSourceBytes bounds how much a single read may pull into memory.
const maxSourceBytes = 32 << 20

// Source yields the raw bytes of a catalog. Read is the only blocking step
// of a load.
type Source interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// FileSource reads a catalog from a local JSON file.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxSourceBytes))
}

// HTTPSource fetches a catalog over HTTP, retrying transient failures.
type HTTPSource struct {
	URL    string
	client *retryablehttp.Client
}

// NewHTTPSource builds an HTTPSource with a quiet retrying client.
func NewHTTPSource(url string) *HTTPSource {
	c := retryablehttp.NewClient()
	c.Logger = log.New(io.Discard, "", 0)
	c.RetryMax = 3
	c.HTTPClient.Timeout = 30 * time.Second
	return &HTTPSource{URL: url, client: c}
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Read(ctx context.Context) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching failed. Got status code: %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
}

// BytesSource serves a fixed payload. Useful for tests and for stores that
// already hold the catalog in memory.
type BytesSource struct {
	Label string
	Data  []byte
	Err   error
}

func (s BytesSource) Name() string { return s.Label }

func (s BytesSource) Read(ctx context.Context) ([]byte, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Data, nil
}
