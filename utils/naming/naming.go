/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package naming canonicalizes entity type identifiers.
package naming

import (
	"errors"
	"path"
	"strings"
	"unicode"
)

var (
	// ErrEmptyName is returned when an identifier is empty after cleaning.
	ErrEmptyName = errors.New("naming: empty identifier")
	// ErrEscapesRoot indicates a path-like identifier that climbs above its
	// root (e.g. "../book").
	ErrEscapesRoot = errors.New("naming: identifier escapes its root")
	// ErrArrayMarker is returned for identifiers ending in "[]".
	ErrArrayMarker = errors.New("naming: array marker in identifier")
)

// Normalize returns the canonical form of a type identifier.
//
// Cleaning policy:
//   - surrounding white space is trimmed;
//   - backslashes become slashes;
//   - the path is cleaned and leading slashes are dropped
//     ("./a//b/../c" -> "a/c");
//   - a trailing "[]" array marker is rejected as part of a name; callers
//     strip it before normalizing.
func Normalize(id string) (string, error) {
	id = strings.TrimSpace(strings.ReplaceAll(id, `\`, "/"))
	if id == "" {
		return "", ErrEmptyName
	}
	if strings.HasSuffix(id, "[]") {
		return "", ErrArrayMarker
	}
	id = strings.TrimLeft(path.Clean(id), "/")
	switch {
	case id == "" || id == ".":
		return "", ErrEmptyName
	case id == ".." || strings.HasPrefix(id, "../"):
		return "", ErrEscapesRoot
	}
	return id, nil
}

// Suffixes returns id followed by every shorter path suffix of it, longest
// first: "a/b/c" -> ["a/b/c", "b/c", "c"].
func Suffixes(id string) []string {
	out := []string{id}
	for {
		i := strings.IndexByte(id, '/')
		if i < 0 {
			return out
		}
		id = id[i+1:]
		out = append(out, id)
	}
}

// Base returns the last path segment of id.
func Base(id string) string { return path.Base(id) }

// Fold reduces id to a comparison key: letters are lower-cased and the
// separators '-', '_', '.', '/' and white space are removed, so
// "sub-folder/class-a", "SubFolder/ClassA" and "sub_folder.class_a" fold
// to the same key.
func Fold(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r == '-' || r == '_' || r == '.' || r == '/' || unicode.IsSpace(r):
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
