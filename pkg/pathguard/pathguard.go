// Package pathguard validates that caller-supplied relative paths stay
// inside a declared root directory before any filesystem read happens.
package pathguard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathEscape indicates a path that resolves outside its declared root.
var ErrPathEscape = errors.New("path escapes root directory")

// Validate canonicalizes root and root/relative (resolving ".", ".." and
// symlinks) and returns the canonical absolute path of the join. It fails
// with ErrPathEscape unless the result is root itself or a descendant of it.
//
// The relative path may point at files that do not exist yet; existence is
// the caller's concern. Only the deepest existing ancestor is resolved
// through the filesystem, the remainder is joined lexically.
func Validate(root, relative string) (string, error) {
	if filepath.IsAbs(relative) {
		return "", fmt.Errorf("%w: %q is absolute", ErrPathEscape, relative)
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	resolved, err := resolveLenient(filepath.Join(root, relative))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", relative, err)
	}

	if resolved != rootResolved && !strings.HasPrefix(resolved, rootResolved+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q resolves outside %s", ErrPathEscape, relative, root)
	}

	return resolved, nil
}

// resolveLenient canonicalizes a path that may not fully exist: symlinks are
// resolved for the deepest existing ancestor and the nonexistent remainder
// is appended as-is.
func resolveLenient(path string) (string, error) {
	p := filepath.Clean(path)
	var tail []string

	for {
		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}

		parent := filepath.Dir(p)
		if parent == p {
			// Nothing on the path exists, not even the filesystem root.
			return "", err
		}
		tail = append(tail, filepath.Base(p))
		p = parent
	}
}
