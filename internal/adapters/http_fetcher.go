package adapters

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/ulikunitz/xz"

	"debdepot/internal/ports"
	"debdepot/internal/shared"
)

const defaultHTTPTimeout = 60 * time.Second

var gzipMagic = []byte{0x1f, 0x8b}
var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// HTTPFetcherAdapter retrieves index and package files over HTTP. Each
// request is a single attempt; a failed fetch is never re-tried within
// a run.
type HTTPFetcherAdapter struct {
	client *http.Client
}

func NewHTTPFetcherAdapter(timeoutSec int) HTTPFetcherAdapter {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return HTTPFetcherAdapter{client: &http.Client{Timeout: timeout}}
}

func (a HTTPFetcherAdapter) FetchText(ctx context.Context, url string) (string, error) {
	resp, err := a.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("repository unavailable: " + url).
			WithCause(err)
	}
	return decodePayload(body)
}

func (a HTTPFetcherAdapter) FetchFile(ctx context.Context, url string, dest string) (int64, error) {
	resp, err := a.get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create download directory").
			WithCause(err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create download file").
			WithCause(err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write download file").
			WithCause(err)
	}
	return written, nil
}

func (a HTTPFetcherAdapter) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create request").
			WithCause(err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("repository unavailable: " + url).
			WithCause(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("repository unavailable: " + url).
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	return resp, nil
}

// decodePayload sniffs the payload's magic bytes and transparently
// decompresses gzip and xz streams; anything else passes through as
// plain text.
func decodePayload(body []byte) (string, error) {
	switch {
	case bytes.HasPrefix(body, gzipMagic):
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return "", decodeError(err)
		}
		defer gz.Close()
		decoded, err := io.ReadAll(gz)
		if err != nil {
			return "", decodeError(err)
		}
		return string(decoded), nil
	case bytes.HasPrefix(body, xzMagic):
		xzReader, err := xz.NewReader(bytes.NewReader(body))
		if err != nil {
			return "", decodeError(err)
		}
		decoded, err := io.ReadAll(xzReader)
		if err != nil {
			return "", decodeError(err)
		}
		return string(decoded), nil
	default:
		return string(body), nil
	}
}

func decodeError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("malformed index: corrupt compressed payload").
		WithCause(err)
}

var _ ports.IndexFetcherPort = HTTPFetcherAdapter{}
var _ ports.FileFetcherPort = HTTPFetcherAdapter{}
