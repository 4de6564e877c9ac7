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

package config

import (
	"github.com/rs/zerolog"

	"dirpx.dev/model/apis"
)

const (
	// DefaultMode represents the default for DefaultMode.
	DefaultMode = apis.ModeNormal
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 32 should be sufficient for all practical schemas.
	DefaultMaxDepth = 32
	// DefaultIgnoreDuplicate represents the default for IgnoreDuplicate.
	// When false, re-registering a taken name with another definition fails.
	DefaultIgnoreDuplicate = false
	// DefaultSortInPlace represents the default for SortInPlace.
	DefaultSortInPlace = false
	// DefaultReservedPrefix represents the default for ReservedPrefix.
	DefaultReservedPrefix = "_"
	// DefaultFoldNames represents the default for FoldNames.
	DefaultFoldNames = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth and DefaultMode are valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if !cfg.DefaultMode.Valid() {
		cfg.DefaultMode = DefaultMode
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		DefaultMode:     DefaultMode,
		MaxDepth:        DefaultMaxDepth,
		IgnoreDuplicate: DefaultIgnoreDuplicate,
		SortInPlace:     DefaultSortInPlace,
		ReservedPrefix:  DefaultReservedPrefix,
		FoldNames:       DefaultFoldNames,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDefaultMode sets the DefaultMode option.
// An unknown mode resets to the default.
func WithDefaultMode(mode apis.ValidationMode) Option {
	return func(c *apis.Config) {
		if !mode.Valid() {
			c.DefaultMode = DefaultMode
			return
		}
		c.DefaultMode = mode
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithIgnoreDuplicate sets the IgnoreDuplicate option.
func WithIgnoreDuplicate(ignore bool) Option {
	return func(c *apis.Config) {
		c.IgnoreDuplicate = ignore
	}
}

// WithSortInPlace sets the SortInPlace option.
func WithSortInPlace(inPlace bool) Option {
	return func(c *apis.Config) {
		c.SortInPlace = inPlace
	}
}

// WithReservedPrefix sets the ReservedPrefix option.
// An empty prefix resets to the default.
func WithReservedPrefix(prefix string) Option {
	return func(c *apis.Config) {
		if prefix == "" {
			c.ReservedPrefix = DefaultReservedPrefix
			return
		}
		c.ReservedPrefix = prefix
	}
}

// WithFoldNames sets the FoldNames option.
func WithFoldNames(fold bool) Option {
	return func(c *apis.Config) {
		c.FoldNames = fold
	}
}

// WithLogger sets the Logger option.
func WithLogger(l zerolog.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = &l
	}
}
