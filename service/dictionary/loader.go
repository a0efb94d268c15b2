package dictionary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/srtworker/tracing"
)

// Loader fetches the full text of a dictionary resource.
type Loader interface {
	Load(ctx context.Context, URL string) (string, error)
}

// DownloadError reports a non-success HTTP status.
type DownloadError struct {
	URL        string
	StatusCode int
}

// Error implements error
func (e *DownloadError) Error() string {
	return "fail to download dict: " + strconv.Itoa(e.StatusCode)
}

// Service loads dictionaries over HTTP(S) or any abstract file storage scheme.
type Service struct {
	fs     afs.Service
	client *http.Client
}

// Load fetches URL and returns its content.
func (s *Service) Load(ctx context.Context, URL string) (text string, err error) {
	ctx, span := tracing.StartSpan(ctx, "dictionary.fetch", tracing.KindClient)
	span.WithAttributes(map[string]string{"dictionary.url": URL})
	defer func() { tracing.EndSpan(span, err) }()

	switch url.Scheme(URL, file.Scheme) {
	case "http", "https":
		return s.loadHTTP(ctx, span, URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("fail to download dict: %w", err)
	}
	return string(data), nil
}

func (s *Service) loadHTTP(ctx context.Context, span *tracing.Span, URL string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return "", fmt.Errorf("fail to download dict: %w", err)
	}
	response, err := s.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("fail to download dict: %w", err)
	}
	defer response.Body.Close()
	span.SetStatusFromHTTPCode(response.StatusCode)
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", &DownloadError{URL: URL, StatusCode: response.StatusCode}
	}
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("fail to download dict: %w", err)
	}
	return string(data), nil
}

// NewLoader creates a dictionary loader; nil arguments select defaults.
func NewLoader(fs afs.Service, client *http.Client) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{fs: fs, client: client}
}
