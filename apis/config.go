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

package apis

import "github.com/rs/zerolog"

// ValidationMode selects how a validation run reports rule violations.
type ValidationMode string

const (
	// ModeNormal collects every violation into an error map.
	ModeNormal ValidationMode = "normal"
	// ModeStrict fails on the first violation encountered.
	ModeStrict ValidationMode = "strict"
)

// Valid reports whether m is a known mode.
func (m ValidationMode) Valid() bool {
	return m == ModeNormal || m == ModeStrict
}

// Config carries read-only knobs that influence normalization, coercion,
// equality and resolution. It is passed by value and should be treated as
// immutable by implementations.
type Config struct {
	// DefaultMode is used by Validate when no mode is given.
	DefaultMode ValidationMode

	// MaxDepth limits how deep nested entities may be constructed during a
	// single update. Acts as a safety guard against pathological input.
	MaxDepth int

	// IgnoreDuplicate controls the alias collision policy of registries.
	// If true, registering a different definition under a taken name
	// overwrites it with a warning; otherwise it fails with ErrAlreadyRegistered.
	IgnoreDuplicate bool

	// SortInPlace makes sequence equality sort the compared sequences in
	// place instead of comparing sorted copies.
	SortInPlace bool

	// ReservedPrefix marks schema keys that carry metadata, not attributes.
	ReservedPrefix string

	// FoldNames enables case and punctuation insensitive resolution of type
	// identifiers ("class-a" resolves "ClassA").
	FoldNames bool

	// Logger receives diagnostic events. Nil disables logging.
	Logger *zerolog.Logger
}

// Log returns the configured logger or a disabled one.
func (c Config) Log() *zerolog.Logger {
	if c.Logger == nil {
		l := zerolog.Nop()
		return &l
	}
	return c.Logger
}
