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

package entity

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"dirpx.dev/model/apis"
	"dirpx.dev/model/config"
	"dirpx.dev/model/schema"
	"dirpx.dev/model/value"
)

// ClassKey is the metadata key, after the reserved prefix, carrying the
// class tag of a definition.
const ClassKey = "class"

// Definition describes one concrete entity type.
type Definition struct {
	name     string
	class    string
	raw      schema.Schema
	cfg      apis.Config
	resolver apis.Resolver

	once  sync.Once
	table *schema.Table
	err   error
}

// Option configures a Definition.
type Option func(*Definition)

// WithResolver sets the resolver used for custom types given by identifier.
func WithResolver(r apis.Resolver) Option {
	return func(d *Definition) { d.resolver = r }
}

// WithConfig replaces the definition's configuration.
func WithConfig(cfg apis.Config) Option {
	return func(d *Definition) { d.cfg = cfg }
}

// Define creates a definition named name. The schema is not inspected until
// the definition is first compiled, so it may reference definitions
// registered later, or itself by name.
func Define(name string, s schema.Schema, opts ...Option) *Definition {
	d := &Definition{name: name, raw: s, cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(d)
	}
	if d.cfg.MaxDepth <= 0 {
		d.cfg.MaxDepth = config.DefaultMaxDepth
	}
	if !d.cfg.DefaultMode.Valid() {
		d.cfg.DefaultMode = config.DefaultMode
	}
	d.class = name
	key := d.cfg.ReservedPrefix + ClassKey
	for _, f := range s {
		if tag, ok := f.Decl.(string); ok && f.Name == key && tag != "" {
			d.class = tag
		}
	}
	return d
}

// Name returns the name the definition was created with.
func (d *Definition) Name() string { return d.name }

// TypeName returns the class tag: the reserved class metadata key if the
// schema declares one, the name otherwise.
func (d *Definition) TypeName() string { return d.class }

// Config returns the definition's configuration.
func (d *Definition) Config() apis.Config { return d.cfg }

// Compile normalizes the schema. The result, including a failure, is
// computed once and reused by every instance.
func (d *Definition) Compile() (*schema.Table, error) {
	d.once.Do(func() {
		n := schema.Normalizer{
			ReservedPrefix: d.cfg.ReservedPrefix,
			Resolve: func(id string) error {
				_, err := d.target(schema.Named(id))
				return err
			},
		}
		d.table, d.err = n.Normalize(d.raw)
		if d.err != nil {
			d.log().Debug().Err(d.err).Msg("schema rejected")
			return
		}
		d.log().Debug().Int("attributes", d.table.Len()).Msg("schema normalized")
	})
	return d.table, d.err
}

// Attributes returns the normalized descriptors in declaration order.
func (d *Definition) Attributes() ([]schema.Descriptor, error) {
	t, err := d.Compile()
	if err != nil {
		return nil, err
	}
	return t.Descriptors(), nil
}

// New constructs an instance and applies values to it. A nil map yields an
// instance with every attribute absent.
func (d *Definition) New(values map[string]any) (*Entity, error) {
	e, err := d.blank()
	if err != nil {
		return nil, err
	}
	if err := e.update(mapSource(values), []*Entity{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (d *Definition) blank() (*Entity, error) {
	t, err := d.Compile()
	if err != nil {
		return nil, err
	}
	return &Entity{def: d, table: t, fields: make(map[string]value.Value, t.Len())}, nil
}

// target returns the definition a custom type refers to.
func (d *Definition) target(t schema.Type) (*Definition, error) {
	if def := t.Definition(); def != nil {
		return asDefinition(t.ID(), def)
	}
	id := t.ID()
	if id == d.name || id == d.class {
		return d, nil
	}
	if d.resolver == nil {
		return nil, fmt.Errorf("%w: %q: no resolver configured", apis.ErrUnresolvable, id)
	}
	def, err := d.resolver.Resolve(id, d.cfg)
	if err != nil {
		return nil, err
	}
	return asDefinition(id, def)
}

func asDefinition(id string, def apis.Definition) (*Definition, error) {
	out, ok := def.(*Definition)
	if !ok || out == nil {
		return nil, fmt.Errorf("%w: %q resolves to %T, not an entity definition", apis.ErrUnresolvable, id, def)
	}
	return out, nil
}

func (d *Definition) log() *zerolog.Logger {
	l := d.cfg.Log().With().Str("definition", d.name).Logger()
	return &l
}
