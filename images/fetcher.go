package images

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Status is the observable state of one image fetch.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

// Result is the outcome of a fetch. Data is set only when Status is
// StatusLoaded.
type Result struct {
	Status Status
	Data   []byte
}

// Fetcher downloads artwork over HTTP and keeps the bytes in memory.
// Fetches of the same URL are not deduplicated; the cache only spares
// repeat lookups after a fetch has completed.
type Fetcher struct {
	client *http.Client
	log    zerolog.Logger

	mu    sync.Mutex
	cache map[string][]byte
}

// NewFetcher creates a Fetcher with a shared HTTP client.
func NewFetcher(log zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{},
		cache:  make(map[string][]byte),
		log:    log,
	}
}

// Fetch retrieves the image at url. An empty url fails immediately
// without a network attempt.
func (f *Fetcher) Fetch(url string) Result {
	if url == "" {
		return Result{Status: StatusFailed}
	}

	f.mu.Lock()
	data, ok := f.cache[url]
	f.mu.Unlock()
	if ok {
		return Result{Status: StatusLoaded, Data: data}
	}

	resp, err := f.client.Get(url)
	if err != nil {
		f.log.Debug().Err(err).Str("url", url).Msg("image fetch failed")
		return Result{Status: StatusFailed}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Debug().Int("status", resp.StatusCode).Str("url", url).Msg("image fetch failed")
		return Result{Status: StatusFailed}
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		f.log.Debug().Err(err).Str("url", url).Msg("image read failed")
		return Result{Status: StatusFailed}
	}

	f.mu.Lock()
	f.cache[url] = data
	f.mu.Unlock()

	return Result{Status: StatusLoaded, Data: data}
}

// DataURI fetches the image and returns it base64 encoded for direct
// use by the frontend. A failed fetch returns an error with no partial
// data.
func (f *Fetcher) DataURI(url string) (string, error) {
	res := f.Fetch(url)
	if res.Status != StatusLoaded {
		return "", fmt.Errorf("failed to fetch image %q", url)
	}
	return toDataURI(res.Data, path.Ext(stripQuery(url))), nil
}

func stripQuery(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		return url[:i]
	}
	return url
}

func getMimeType(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

func toDataURI(data []byte, ext string) string {
	mimeType := getMimeType(ext)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
