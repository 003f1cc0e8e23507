package ports

import "context"

// IndexFetcherPort retrieves a repository index as decoded text.
// Compressed payloads are decompressed transparently by the adapter.
type IndexFetcherPort interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// FileFetcherPort streams a package payload to a local path and
// reports the number of bytes written.
type FileFetcherPort interface {
	FetchFile(ctx context.Context, url string, dest string) (int64, error)
}
