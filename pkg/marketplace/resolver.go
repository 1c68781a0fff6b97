package marketplace

import (
	"os"
	"path/filepath"

	"github.com/ccplugins/pluginserve/pkg/pathguard"
)

// SkillManifestName is the fixed filename a skill directory must contain.
const SkillManifestName = "SKILL.md"

// resolveElementPath finds the on-disk file backing the named element.
// Manifest entries are tried in declared order; object-typed entries are
// skipped because they carry no path. An entry matches when the requested
// name equals its filename stem or the raw entry string verbatim. Matching
// entries are validated against the plugin's source directory before any
// stat: entries escaping it are treated as non-matches rather than aborting
// resolution. An empty return means "element not present", not an error.
func (s *Service) resolveElementPath(marketplaceDir, source string, category Category, entries []ElementEntry, name string) string {
	root := filepath.Join(marketplaceDir, source)

	for _, entry := range entries {
		if !entry.IsPath() {
			continue
		}
		if name != stem(entry.Path) && name != entry.Path {
			continue
		}

		guarded, err := pathguard.Validate(root, entry.Path)
		if err != nil {
			s.log.Warnf("Rejected element path %q under %s: %v", entry.Path, root, err)
			continue
		}

		if target := elementTarget(category, guarded); target != "" {
			return target
		}
	}

	return ""
}

// elementTarget applies the category-specific file rules to a guarded path.
// Skills may point at a directory holding SKILL.md or directly at a file;
// agents and commands must point at a regular file.
func elementTarget(category Category, guarded string) string {
	info, err := os.Stat(guarded)
	if err != nil {
		return ""
	}

	if info.IsDir() {
		if category != CategorySkills {
			return ""
		}
		skill := filepath.Join(guarded, SkillManifestName)
		if fi, err := os.Stat(skill); err == nil && fi.Mode().IsRegular() {
			return skill
		}
		return ""
	}

	if info.Mode().IsRegular() {
		return guarded
	}
	return ""
}
