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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"dirpx.dev/model/apis"
)

// ErrInvalidMode is returned when a config document names an unknown
// validation mode.
var ErrInvalidMode = errors.New("model(config): unknown validation mode")

// File is the YAML shape of a configuration document. Absent keys keep
// their defaults.
type File struct {
	DefaultMode     *string `yaml:"default_mode,omitempty"`
	MaxDepth        *int    `yaml:"max_depth,omitempty"`
	IgnoreDuplicate *bool   `yaml:"ignore_duplicate,omitempty"`
	SortInPlace     *bool   `yaml:"sort_in_place,omitempty"`
	ReservedPrefix  *string `yaml:"reserved_prefix,omitempty"`
	FoldNames       *bool   `yaml:"fold_names,omitempty"`
	// LogLevel is a zerolog level name ("debug", "info", ...). It is
	// always checked but only takes effect together with a writer passed to
	// Parse or Load.
	LogLevel *string `yaml:"log_level,omitempty"`
}

// Load reads the configuration document at path.
func Load(path string, logOut io.Writer) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("model(config): read %s: %w", path, err)
	}
	return Parse(data, logOut)
}

// Parse decodes a YAML configuration document. When logOut is non-nil a
// zerolog logger writing to it is installed at the document's log level.
func Parse(data []byte, logOut io.Writer) (apis.Config, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return apis.Config{}, fmt.Errorf("model(config): decode: %w", err)
	}
	opts, err := f.Options(logOut)
	if err != nil {
		return apis.Config{}, err
	}
	return NewConfig(opts...), nil
}

// Options converts the document into functional options.
func (f File) Options(logOut io.Writer) ([]Option, error) {
	var opts []Option
	if f.DefaultMode != nil {
		mode := apis.ValidationMode(*f.DefaultMode)
		if !mode.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMode, *f.DefaultMode)
		}
		opts = append(opts, WithDefaultMode(mode))
	}
	if f.MaxDepth != nil {
		opts = append(opts, WithMaxDepth(*f.MaxDepth))
	}
	if f.IgnoreDuplicate != nil {
		opts = append(opts, WithIgnoreDuplicate(*f.IgnoreDuplicate))
	}
	if f.SortInPlace != nil {
		opts = append(opts, WithSortInPlace(*f.SortInPlace))
	}
	if f.ReservedPrefix != nil {
		opts = append(opts, WithReservedPrefix(*f.ReservedPrefix))
	}
	if f.FoldNames != nil {
		opts = append(opts, WithFoldNames(*f.FoldNames))
	}
	level := zerolog.InfoLevel
	if f.LogLevel != nil {
		l, err := zerolog.ParseLevel(*f.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("model(config): log level: %w", err)
		}
		level = l
	}
	if logOut != nil {
		opts = append(opts, WithLogger(zerolog.New(logOut).Level(level).With().Timestamp().Logger()))
	}
	return opts, nil
}
