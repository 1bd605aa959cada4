package fetch

import "context"

// Downloader replaces a local file with the body of a remote resource.
type Downloader interface {
	Download(ctx context.Context, dest, rawURL string) error
}

// Ensure Client implements the interface
var _ Downloader = (*Client)(nil)
