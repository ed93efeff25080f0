package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads declarative assets (resource catalogs, configuration
// documents) from any afs-addressable location and decodes them into the
// supplied target. Values may reference environment variables with the
// ${env.KEY} form.
type Service struct {
	fs        afs.Service
	baseURL   string
	fsOptions []storage.Option
}

// New creates a meta service rooted at baseURL; relative URLs passed to Load
// are resolved against it.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{
		fs:        fs,
		baseURL:   baseURL,
		fsOptions: options,
	}
}

// Load downloads the asset identified by URL and unmarshals it into target.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	data, err := s.Download(ctx, URL)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return nil
}

// Download fetches the raw asset bytes with environment expansion applied.
func (s *Service) Download(ctx context.Context, URL string) ([]byte, error) {
	assetURL := s.normalizeURL(URL)
	data, err := s.fs.DownloadWithURL(ctx, assetURL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", assetURL, err)
	}
	return []byte(expandEnvExpr(string(data))), nil
}

// Exists checks whether the asset identified by URL is present.
func (s *Service) Exists(ctx context.Context, URL string) (bool, error) {
	return s.fs.Exists(ctx, s.normalizeURL(URL), s.fsOptions...)
}

func (s *Service) normalizeURL(URL string) string {
	if s.baseURL == "" || strings.Contains(URL, "://") {
		return URL
	}
	return url.Join(s.baseURL, URL)
}
