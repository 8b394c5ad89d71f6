// Package fileref resolves sentinel-prefixed parameter values into file
// contents. "@path/to/file" references a file whose contents are inserted
// verbatim; "-@path/to/file" references a file whose contents are trimmed
// of surrounding whitespace first. Resolution is confined to a bounding
// directory: a reference may never read outside the resource working dir.
package fileref

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pirogoeth/concourse-http-api-resource/internal/constants"
)

// ErrNotAReference marks a value that carries no sentinel prefix. It is an
// expected outcome, not a failure: callers fall back to the literal value.
var ErrNotAReference = errors.New("not a file reference")

// ErrTraversal marks a reference whose canonical path escapes the bounding
// directory.
var ErrTraversal = errors.New("cannot traverse outside of bounding directory")

// ErrNotFound marks a reference to a path that does not exist or is not a
// regular file.
var ErrNotFound = errors.New("path not found or not a regular file")

// Ref is a parsed file reference.
type Ref struct {
	Path  string
	Strip bool
}

// Parse classifies a parameter value. Values starting with "-@" yield a
// stripping reference, values starting with "@" a verbatim one; anything
// else returns ErrNotAReference.
func Parse(value string) (Ref, error) {
	switch {
	case strings.HasPrefix(value, constants.RefStripPrefix):
		return Ref{Path: value[len(constants.RefStripPrefix):], Strip: true}, nil
	case strings.HasPrefix(value, constants.RefPrefix):
		return Ref{Path: value[len(constants.RefPrefix):]}, nil
	default:
		return Ref{}, fmt.Errorf("value %q: %w", value, ErrNotAReference)
	}
}

// Resolve joins the reference path onto bound and canonicalizes it. An
// absolute reference path is reinterpreted relative to bound. The result
// must stay inside bound and name an existing regular file.
func (r Ref) Resolve(bound string) (string, error) {
	p := strings.TrimPrefix(r.Path, string(os.PathSeparator))
	boundClean := filepath.Clean(bound)
	resolved := filepath.Clean(filepath.Join(boundClean, p))

	if resolved != boundClean && !strings.HasPrefix(resolved, boundClean+string(os.PathSeparator)) {
		return "", fmt.Errorf("resolving %q against %q: %w", r.Path, bound, ErrTraversal)
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("path %q: %w", resolved, ErrNotFound)
	}
	return resolved, nil
}

// Contents resolves the reference against bound and returns the file text,
// trimmed of surrounding whitespace for stripping references.
func (r Ref) Contents(bound string) (string, error) {
	path, err := r.Resolve(bound)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}
	if r.Strip {
		return strings.TrimSpace(string(data)), nil
	}
	return string(data), nil
}
