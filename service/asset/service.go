// Package asset creates revocable handles for conversion outputs. A handle is
// the URL of an object written under the configured base URL; whoever
// receives it is responsible for revoking it.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/srtworker/internal/idgen"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "mem://localhost/srtworker"

// Store creates, opens and revokes output handles.
type Store interface {
	Create(ctx context.Context, data []byte) (string, error)
	Open(ctx context.Context, handle string) ([]byte, error)
	Revoke(ctx context.Context, handle string) error
}

// Service is an abstract file storage backed Store.
type Service struct {
	fs        afs.Service
	baseURL   string
	extension string
}

// Create writes data to a uniquely named object and returns its URL.
func (s *Service) Create(ctx context.Context, data []byte) (string, error) {
	handle := url.Join(s.baseURL, idgen.Name(s.extension))
	if err := s.fs.Upload(ctx, handle, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to create handle %s: %w", handle, err)
	}
	return handle, nil
}

// Open returns the bytes behind a handle.
func (s *Service) Open(ctx context.Context, handle string) ([]byte, error) {
	if err := s.owns(handle); err != nil {
		return nil, err
	}
	data, err := s.fs.DownloadWithURL(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to open handle %s: %w", handle, err)
	}
	return data, nil
}

// Revoke deletes the object behind a handle. Revoking twice is an error.
func (s *Service) Revoke(ctx context.Context, handle string) error {
	if err := s.owns(handle); err != nil {
		return err
	}
	exists, err := s.fs.Exists(ctx, handle)
	if err != nil {
		return fmt.Errorf("failed to check handle %s: %w", handle, err)
	}
	if !exists {
		return fmt.Errorf("handle %s was not found", handle)
	}
	if err = s.fs.Delete(ctx, handle); err != nil {
		return fmt.Errorf("failed to revoke handle %s: %w", handle, err)
	}
	return nil
}

func (s *Service) owns(handle string) error {
	if !strings.HasPrefix(handle, s.baseURL+"/") {
		return fmt.Errorf("handle %s does not belong to %s", handle, s.baseURL)
	}
	return nil
}

// BaseURL returns the location handles are created under.
func (s *Service) BaseURL() string {
	return s.baseURL
}

// Option customises the store
type Option func(s *Service)

// WithExtension sets the handle name extension, ".srt" by default.
func WithExtension(ext string) Option {
	return func(s *Service) {
		s.extension = ext
	}
}

// New creates a store writing under baseURL.
func New(fs afs.Service, baseURL string, opts ...Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ret := &Service{fs: fs, baseURL: strings.TrimRight(baseURL, "/"), extension: ".srt"}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

var _ Store = (*Service)(nil)
