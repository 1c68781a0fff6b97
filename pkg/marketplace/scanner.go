package marketplace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ManifestRelPath is the fixed location of a marketplace manifest inside
// its marketplace directory.
var ManifestRelPath = filepath.Join(".claude-plugin", "marketplace.json")

// Scanner enumerates marketplace manifests under a root directory.
type Scanner struct {
	root string
	log  *logrus.Logger

	scans     atomic.Int64
	scanNanos atomic.Int64
}

// NewScanner creates a scanner for the given marketplaces root.
func NewScanner(root string, log *logrus.Logger) *Scanner {
	if log == nil {
		log = logrus.New()
	}
	return &Scanner{root: root, log: log}
}

// ScannedMarketplace pairs a marketplace directory with its parsed manifest.
type ScannedMarketplace struct {
	Dir      string
	Manifest *Manifest
}

// Scan reads every marketplace manifest under the root and returns the
// parsed results in directory-listing order. A missing root is a valid
// unconfigured state and yields an empty result. Marketplaces whose
// manifest is missing are skipped silently; marketplaces whose manifest is
// unreadable or unparsable are skipped with a warning. Plugin order within
// each marketplace follows the manifest's own plugin array.
func (s *Scanner) Scan() ([]ScannedMarketplace, error) {
	start := time.Now()
	defer func() {
		s.scans.Add(1)
		s.scanNanos.Add(int64(time.Since(start)))
	}()

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debugf("Marketplaces directory does not exist: %s", s.root)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read marketplaces directory %s: %w", s.root, err)
	}

	var scanned []ScannedMarketplace
	for _, entry := range entries {
		dir := filepath.Join(s.root, entry.Name())
		if !entry.IsDir() {
			// ReadDir reports the symlink itself, not its target, so a
			// marketplace installed as a symlinked directory needs a stat.
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}
		}

		manifestPath := filepath.Join(dir, ManifestRelPath)

		data, err := os.ReadFile(manifestPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			s.log.Warnf("Skipping unreadable marketplace manifest %s: %v", manifestPath, err)
			continue
		}

		var manifest Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			s.log.Warnf("Skipping invalid marketplace manifest %s: %v", manifestPath, err)
			continue
		}

		scanned = append(scanned, ScannedMarketplace{Dir: dir, Manifest: &manifest})
	}

	return scanned, nil
}

// Root returns the marketplaces root directory the scanner reads from.
func (s *Scanner) Root() string {
	return s.root
}

// ScanStats is a point-in-time snapshot of scan counters.
type ScanStats struct {
	Scans    int64   `json:"scans"`
	Duration float64 `json:"duration_seconds"`
}

func (s *Scanner) stats() ScanStats {
	return ScanStats{
		Scans:    s.scans.Load(),
		Duration: time.Duration(s.scanNanos.Load()).Seconds(),
	}
}
