package marketplace

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Category identifies one of the element kinds a plugin can declare.
type Category string

const (
	CategorySkills   Category = "skills"
	CategoryAgents   Category = "agents"
	CategoryCommands Category = "commands"
)

// Valid reports whether the category is one of the three known kinds.
func (c Category) Valid() bool {
	switch c {
	case CategorySkills, CategoryAgents, CategoryCommands:
		return true
	}
	return false
}

// ParseCategory converts a raw string into a Category, failing with
// ErrInvalidCategory for anything outside the fixed set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q (must be one of skills, agents, commands)", ErrInvalidCategory, s)
	}
	return c, nil
}

// ElementEntry is a single entry in a plugin's per-category array. Manifests
// mix plain path strings with {"name": ...} objects; the two variants stay
// distinct because only path entries can resolve to files on disk.
type ElementEntry struct {
	// Path holds the relative path for string-typed entries.
	Path string
	// Name holds the name field of object-typed entries.
	Name string

	isPath bool
	raw    json.RawMessage
}

// IsPath reports whether the entry is the path-string variant. Any JSON
// string counts, including the empty string.
func (e ElementEntry) IsPath() bool {
	return e.isPath || e.Path != ""
}

// DisplayName returns the name an entry contributes to a plugin summary:
// the filename stem for path entries, the name field for object entries.
// The second return is false for entries that contribute nothing.
func (e ElementEntry) DisplayName() (string, bool) {
	if e.IsPath() {
		if s := stem(e.Path); s != "" && s != "." {
			return s, true
		}
		return "", false
	}
	if e.Name != "" {
		return e.Name, true
	}
	return "", false
}

// UnmarshalJSON accepts a JSON string or an object with a name field.
// Entries of any other shape are kept for round-tripping but are neither
// resolvable nor named; one odd entry never invalidates its manifest.
func (e *ElementEntry) UnmarshalJSON(data []byte) error {
	e.raw = append(json.RawMessage(nil), data...)

	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		e.Path = path
		e.isPath = true
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		e.Name = obj.Name
	}
	return nil
}

// MarshalJSON reproduces the entry as it appeared in the manifest.
func (e ElementEntry) MarshalJSON() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}
	if e.IsPath() {
		return json.Marshal(e.Path)
	}
	return json.Marshal(struct {
		Name string `json:"name"`
	}{Name: e.Name})
}

// PluginDefinition is one plugin object inside a marketplace manifest.
type PluginDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Source      string         `json:"source,omitempty"`
	Agents      []ElementEntry `json:"agents,omitempty"`
	Commands    []ElementEntry `json:"commands,omitempty"`
	Skills      []ElementEntry `json:"skills,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Owner       map[string]any `json:"owner,omitempty"`
}

// Elements returns the definition's entries for one category.
func (p *PluginDefinition) Elements(category Category) []ElementEntry {
	switch category {
	case CategorySkills:
		return p.Skills
	case CategoryAgents:
		return p.Agents
	case CategoryCommands:
		return p.Commands
	}
	return nil
}

// Manifest is the parsed form of <marketplace-dir>/.claude-plugin/marketplace.json.
type Manifest struct {
	Name     string             `json:"name,omitempty"`
	Owner    map[string]any     `json:"owner,omitempty"`
	Metadata map[string]any     `json:"metadata,omitempty"`
	Plugins  []PluginDefinition `json:"plugins"`
}

// PluginSummary is the read-only listing projection of a plugin definition.
type PluginSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Agents      []string `json:"agents"`
	Commands    []string `json:"commands"`
	Skills      []string `json:"skills"`
}

// Summarize projects a plugin definition into its listing form.
func Summarize(def *PluginDefinition) PluginSummary {
	return PluginSummary{
		Name:        def.Name,
		Description: def.Description,
		Agents:      extractNames(def.Agents),
		Commands:    extractNames(def.Commands),
		Skills:      extractNames(def.Skills),
	}
}

// PluginDetail is the full description of a plugin, augmented with the
// owner and metadata of the marketplace that declares it.
type PluginDetail struct {
	Name     string             `json:"name"`
	Owner    map[string]any     `json:"owner,omitempty"`
	Metadata map[string]any     `json:"metadata,omitempty"`
	Plugins  []PluginDefinition `json:"plugins"`
}

// ElementRef is the lookup key a caller supplies to load one element.
type ElementRef struct {
	Category Category `json:"type"`
	Name     string   `json:"name"`
}

// LoadedElement is the successfully resolved and read content of one element.
type LoadedElement struct {
	Category Category `json:"element_type"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Content  string   `json:"content"`
}

func extractNames(entries []ElementEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := entry.DisplayName(); ok {
			names = append(names, name)
		}
	}
	return names
}

// stem returns the final path element without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
