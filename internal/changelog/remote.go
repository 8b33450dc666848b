package changelog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRemoteTimeout is the default timeout for remote changelog fetches.
const DefaultRemoteTimeout = 5 * time.Second

// maxRemoteSize bounds the size of a fetched changelog.
const maxRemoteSize = 8 << 20

// FetchRemote fetches and parses a changelog from a URL.
// The context can be used to control timeout and cancellation.
func FetchRemote(ctx context.Context, url string) (*Changelog, error) {
	data, err := FetchRemoteBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	c, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing remote changelog: %w", err)
	}
	return c, nil
}

// FetchRemoteBytes downloads the raw changelog at url.
func FetchRemoteBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote changelog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching remote changelog: unexpected status code: %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, maxRemoteSize+1)); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if buf.Len() > maxRemoteSize {
		return nil, fmt.Errorf("remote changelog exceeds %d bytes", maxRemoteSize)
	}
	return buf.Bytes(), nil
}
