package marketplace

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// LoadElement resolves and reads one element of a plugin. It fails with
// ErrInvalidCategory before touching the filesystem when the category is
// outside the fixed set. Every other miss (unknown plugin, plugin without
// a source, element not declared, file gone or unreadable) yields a nil
// element rather than an error, so batch loads stay partial-success.
func (s *Service) LoadElement(ctx context.Context, pluginName string, category Category, elementName string) (*LoadedElement, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q (must be one of skills, agents, commands)", ErrInvalidCategory, category)
	}

	marketplaceDir, ok := s.LocateDirectory(ctx, pluginName)
	if !ok {
		return nil, nil
	}

	def, err := s.findDefinition(ctx, pluginName)
	if err != nil {
		return nil, err
	}
	if def == nil || def.Source == "" {
		return nil, nil
	}

	entries := def.Elements(category)
	if len(entries) == 0 {
		return nil, nil
	}

	path := s.resolveElementPath(marketplaceDir, def.Source, category, entries, elementName)
	if path == "" {
		s.log.Debugf("Element %q of type %s not found in plugin %q", elementName, category, pluginName)
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		s.log.Warnf("Failed to read element file %s: %v", path, err)
		return nil, nil
	}

	s.log.WithFields(logrus.Fields{
		"plugin":   pluginName,
		"category": category,
		"element":  elementName,
	}).Info("Loaded plugin element")

	return &LoadedElement{
		Category: category,
		Name:     elementName,
		Path:     path,
		Content:  string(content),
	}, nil
}

// LoadElements loads a batch of element references in input order.
// Categories are validated for the whole batch before any filesystem
// access. References that fail to load are dropped from the output; the
// relative order of successful loads is preserved.
func (s *Service) LoadElements(ctx context.Context, pluginName string, refs []ElementRef) ([]LoadedElement, error) {
	for _, ref := range refs {
		if !ref.Category.Valid() {
			return nil, fmt.Errorf("%w: %q (must be one of skills, agents, commands)", ErrInvalidCategory, ref.Category)
		}
	}

	loaded := make([]LoadedElement, 0, len(refs))
	for _, ref := range refs {
		if ref.Name == "" {
			continue
		}

		element, err := s.LoadElement(ctx, pluginName, ref.Category, ref.Name)
		if err != nil {
			return nil, err
		}
		if element != nil {
			loaded = append(loaded, *element)
		}
	}

	return loaded, nil
}
