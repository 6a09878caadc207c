package shell

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const downloadTimeout = time.Minute * 5

// WebDownloader performs plain HTTP GETs against provider archive endpoints.
// Redirects are followed; any transport error or non-2xx status is returned
// to the caller, never retried (a failed plugin is retried naturally by the
// next run).
type WebDownloader struct {
	client *http.Client
}

func NewWebDownloader() *WebDownloader {
	return &WebDownloader{client: &http.Client{Timeout: downloadTimeout}}
}

func (this *WebDownloader) Download(address string) (io.ReadCloser, error) {
	request, err := http.NewRequest(http.MethodGet, address, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", "restock")
	response, err := this.client.Do(request)
	if err != nil {
		return nil, err
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		_ = response.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %s (%s)", response.Status, address)
	}
	return response.Body, nil
}
