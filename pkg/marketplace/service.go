package marketplace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Service answers plugin discovery and element loading requests against the
// marketplaces on disk. Marketplace content is re-read from disk on every
// call; the only state carried across calls is the bounded plugin-name to
// marketplace-directory cache.
type Service struct {
	scanner *Scanner
	cache   *directoryCache
	log     *logrus.Logger
}

// Options configures a marketplace service.
type Options struct {
	// RootDir is the directory holding marketplace directories. Defaults
	// to DefaultRootDir() when empty.
	RootDir string
	// CacheSize bounds the plugin-name to directory cache. Defaults to
	// DefaultCacheSize when zero or negative.
	CacheSize int
	// Logger receives scan warnings and load traces.
	Logger *logrus.Logger
}

// NewService creates a marketplace service.
func NewService(opts Options) (*Service, error) {
	if opts.RootDir == "" {
		opts.RootDir = DefaultRootDir()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	cache, err := newDirectoryCache(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory cache: %w", err)
	}

	return &Service{
		scanner: NewScanner(opts.RootDir, opts.Logger),
		cache:   cache,
		log:     opts.Logger,
	}, nil
}

// DefaultRootDir returns the per-user marketplaces directory.
func DefaultRootDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "/tmp"
	}
	return filepath.Join(homeDir, ".claude", "plugins", "marketplaces")
}

// RootDir returns the marketplaces root this service reads from.
func (s *Service) RootDir() string {
	return s.scanner.Root()
}

// CacheStats reports directory cache counters for observability.
func (s *Service) CacheStats() CacheStats {
	return s.cache.stats()
}

// ScanStats reports marketplace scan counters for observability.
func (s *Service) ScanStats() ScanStats {
	return s.scanner.stats()
}
