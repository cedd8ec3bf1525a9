package formdef

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// FromFile reads an OpenAPI document from disk and extracts the definition
// for operationID.
func FromFile(ctx context.Context, path, operationID string) (Definition, error) {
	if path == "" {
		return Definition{}, errors.New("formdef: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return Definition{}, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Definition{}, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return Definition{}, err
	}
	return FromDocument(ctx, data, operationID)
}

// FromURL fetches an OpenAPI document over HTTP and extracts the definition
// for operationID. A nil client falls back to http.DefaultClient.
func FromURL(ctx context.Context, client *http.Client, url, operationID string) (Definition, error) {
	if url == "" {
		return Definition{}, errors.New("formdef: url is required")
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Definition{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Definition{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Definition{}, fmt.Errorf("formdef: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Definition{}, err
	}
	return FromDocument(ctx, data, operationID)
}
