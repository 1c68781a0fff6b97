// Package marketplace discovers plugins declared by marketplace manifests
// on disk and loads their declared elements as text content.
//
// # Overview
//
// A marketplaces root directory holds one subdirectory per marketplace;
// each marketplace declares its plugins in a JSON manifest at the fixed
// relative path .claude-plugin/marketplace.json. Plugins declare agents,
// commands and skills as arrays mixing plain path strings with named
// objects. The package scans those manifests, answers listing and detail
// lookups, and resolves element names to files before reading them.
//
// # Pipeline
//
// Scanner -> Index -> Resolver -> Loader, each stage consuming the previous
// stage's output:
//
//   - Scanner enumerates marketplace directories and parses manifests,
//     skipping broken ones with a warning.
//   - Index answers listing, detail and directory lookups; only the narrow
//     plugin-name to directory lookup is cached (bounded LRU, negative
//     results included), listing and detail always re-read disk.
//   - Resolver maps an element name to a file, guarding every candidate
//     path against escapes from the plugin's source directory. Skills
//     resolve through a directory containing SKILL.md; agents and commands
//     resolve to the referenced file directly.
//   - Loader reads resolved files, treating every per-element failure as
//     "element absent" so batch loads return whatever subset resolved.
//
// # Failure policy
//
// Broken marketplaces are skipped, unresolvable elements are dropped, and
// missing files degrade to empty results. The only hard errors are
// ErrInvalidCategory (caller error, raised before filesystem access),
// ErrPluginNotFound from DescribePlugin, and unexpected I/O errors on the
// marketplaces root itself.
package marketplace
