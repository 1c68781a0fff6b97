package marketplace

import "errors"

var (
	// ErrPluginNotFound indicates that no scanned marketplace declares a
	// plugin with the requested name.
	ErrPluginNotFound = errors.New("plugin not found in any marketplace")

	// ErrInvalidCategory indicates an element category outside the fixed
	// set of skills, agents and commands. This is a caller error and is
	// raised before any filesystem access.
	ErrInvalidCategory = errors.New("invalid element category")
)
