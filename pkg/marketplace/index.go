package marketplace

import (
	"context"
	"errors"
	"fmt"
)

// ListPlugins scans every marketplace and returns a flattened listing of
// plugin summaries. Duplicate names across marketplaces are preserved as
// separate entries. A missing marketplaces root yields an empty listing.
func (s *Service) ListPlugins(ctx context.Context) ([]PluginSummary, error) {
	scanned, err := s.scanner.Scan()
	if err != nil {
		return nil, err
	}

	summaries := make([]PluginSummary, 0)
	for _, m := range scanned {
		for i := range m.Manifest.Plugins {
			summaries = append(summaries, Summarize(&m.Manifest.Plugins[i]))
		}
	}
	return summaries, nil
}

// DescribePlugin returns the full definition of the first plugin with the
// given name across all marketplaces, augmented with the marketplace's
// owner and, when the plugin carries no metadata of its own, the
// marketplace's metadata. It fails with ErrPluginNotFound when no
// marketplace declares the name. The lookup deliberately bypasses the
// directory cache so detail views always reflect current disk content.
func (s *Service) DescribePlugin(ctx context.Context, name string) (*PluginDetail, error) {
	scanned, err := s.scanner.Scan()
	if err != nil {
		return nil, err
	}

	for _, m := range scanned {
		for i := range m.Manifest.Plugins {
			plugin := &m.Manifest.Plugins[i]
			if plugin.Name != name {
				continue
			}

			metadata := plugin.Metadata
			if metadata == nil {
				metadata = m.Manifest.Metadata
			}
			return &PluginDetail{
				Name:     plugin.Name,
				Owner:    m.Manifest.Owner,
				Metadata: metadata,
				Plugins:  []PluginDefinition{*plugin},
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrPluginNotFound, name)
}

// LocateDirectory returns the marketplace directory declaring the named
// plugin, consulting the bounded LRU cache before scanning. Both positive
// and negative outcomes are cached. There is no invalidation: if the
// directory disappears later, element resolution re-validates existence at
// load time and the staleness degrades to "element not found".
func (s *Service) LocateDirectory(ctx context.Context, name string) (string, bool) {
	if entry, ok := s.cache.get(name); ok {
		s.log.Debugf("Directory cache hit for plugin %q (found=%v)", name, entry.found)
		return entry.dir, entry.found
	}

	scanned, err := s.scanner.Scan()
	if err != nil {
		// Unexpected I/O errors are not cached: the next lookup retries.
		s.log.Warnf("Failed to scan marketplaces while locating plugin %q: %v", name, err)
		return "", false
	}

	for _, m := range scanned {
		for i := range m.Manifest.Plugins {
			if m.Manifest.Plugins[i].Name == name {
				s.cache.add(name, directoryEntry{dir: m.Dir, found: true})
				return m.Dir, true
			}
		}
	}

	s.cache.add(name, directoryEntry{found: false})
	s.log.Debugf("Plugin %q not declared by any marketplace", name)
	return "", false
}

// findDefinition returns the first matching plugin definition, or nil when
// the plugin is unknown. Unexpected scan errors are propagated.
func (s *Service) findDefinition(ctx context.Context, name string) (*PluginDefinition, error) {
	detail, err := s.DescribePlugin(ctx, name)
	if err != nil {
		if errors.Is(err, ErrPluginNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &detail.Plugins[0], nil
}
