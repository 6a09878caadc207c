package contracts

import "io"

// Downloader streams the resource at the given address. Implementations must
// not buffer the whole payload; extraction consumes it incrementally.
type Downloader interface {
	Download(address string) (io.ReadCloser, error)
}
