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

package model

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"dirpx.dev/model/apis"
	"dirpx.dev/model/builder"
	"dirpx.dev/model/config"
	"dirpx.dev/model/entity"
	"dirpx.dev/model/registry"
	"dirpx.dev/model/schema"
	"dirpx.dev/model/utils/naming"
)

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("model: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("model: builder returned nil resolver")
)

// Catalog owns the definitions of one host application: a configuration,
// a registry of named definitions, the resolver that maps type identifiers
// to them, and the builder that composes both.
//
// Reads load an immutable snapshot atomically. Writers serialize on an
// internal mutex and publish a new snapshot.
type Catalog struct {
	// buildMu serializes writers (reconfigurations/swaps) so we never publish
	// partially-built snapshots.
	buildMu sync.Mutex
	// st is the current snapshot.
	st atomic.Pointer[state]
}

// state is a catalog snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	cfg apis.Config
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pres indicates whether the res is pinned (immutable).
	pres bool
}

// NewCatalog creates a catalog with the default builder and a config built
// from opts.
func NewCatalog(opts ...config.Option) *Catalog {
	s := &state{cfg: config.NewConfig(opts...), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.reg, nil)
	c := &Catalog{}
	c.st.Store(s)
	return c
}

// Resolve implements apis.Resolver against the current snapshot. The cfg
// argument is ignored; the catalog's own configuration applies.
// Definitions created by Define resolve through it, so they see definitions
// registered after them.
func (c *Catalog) Resolve(id string, _ apis.Config) (apis.Definition, error) {
	s := c.st.Load()
	return s.res.Resolve(id, s.cfg)
}

// Lookup resolves id to an entity definition.
func (c *Catalog) Lookup(id string) (*entity.Definition, error) {
	def, err := c.Resolve(id, apis.Config{})
	if err != nil {
		return nil, err
	}
	d, ok := def.(*entity.Definition)
	if !ok {
		return nil, fmt.Errorf("%w %q: got %T", apis.ErrUnresolvable, id, def)
	}
	return d, nil
}

// IsRegistered reports whether id resolves.
func (c *Catalog) IsRegistered(id string) bool {
	_, err := c.Lookup(id)
	return err == nil
}

// Define creates a definition bound to the catalog's resolver and current
// configuration and registers it under name. A class tag declared in the
// schema that differs from name is registered as well.
func (c *Catalog) Define(name string, s schema.Schema) (*entity.Definition, error) {
	cfg := c.Config()
	d := entity.Define(name, s, entity.WithResolver(c), entity.WithConfig(cfg))
	reg := c.Registry()
	tag := d.TypeName()
	if tag != name {
		// A failed Define leaves no entry behind.
		if err := claimable(reg, cfg, tag, d); err != nil {
			return nil, err
		}
	}
	if err := reg.Register(name, d); err != nil {
		return nil, err
	}
	if tag != name {
		if err := reg.Register(tag, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// claimable reports whether id can be registered for d under cfg's
// duplicate policy.
func claimable(reg apis.Registry, cfg apis.Config, id string, d *entity.Definition) error {
	key, err := naming.Normalize(id)
	if err != nil {
		return fmt.Errorf("model: class tag %q: %w", id, err)
	}
	if prev, ok := reg.Lookup(key); ok && prev != apis.Definition(d) && !cfg.IgnoreDuplicate {
		return fmt.Errorf("%w: %q", registry.ErrAlreadyRegistered, key)
	}
	return nil
}

// DefineYAML is Define for a YAML schema document (see schema.ParseYAML).
func (c *Catalog) DefineYAML(name string, data []byte) (*entity.Definition, error) {
	s, err := schema.ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return c.Define(name, s)
}

// Alias registers alias for the definition id resolves to.
func (c *Catalog) Alias(alias, id string) error {
	d, err := c.Lookup(id)
	if err != nil {
		return err
	}
	return c.Registry().Register(alias, d)
}

// New instantiates the definition id resolves to.
func (c *Catalog) New(id string, values map[string]any) (*entity.Entity, error) {
	d, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	return d.New(values)
}

// Parse instantiates a loosely-typed object by its class tag, the reserved
// class key (e.g. "_class").
func (c *Catalog) Parse(values any) (*entity.Entity, error) {
	return c.ParseAs(values, "")
}

// ParseAs is Parse with an explicit type identifier. A non-empty id takes
// precedence over the class tag of values.
func (c *Catalog) ParseAs(values any, id string) (*entity.Entity, error) {
	key := c.Config().ReservedPrefix + entity.ClassKey
	obj, ok := values.(map[string]any)
	if !ok {
		return nil, &apis.TypeMismatchError{Attribute: key, Value: values, Expected: "object"}
	}
	if id == "" {
		raw, found := obj[key]
		if !found || raw == nil {
			return nil, &apis.SchemaError{Attribute: key, Reason: "missing class"}
		}
		tag, isString := raw.(string)
		if !isString {
			return nil, &apis.TypeMismatchError{Attribute: key, Value: raw, Expected: "class tag string"}
		}
		id = tag
	}
	return c.New(id, obj)
}

// SetAll explicitly sets all catalog components.
//
// Nil arguments leave the corresponding component unchanged. Missing
// layers are rebuilt by the (possibly new) builder; layers passed in
// become pinned.
func (c *Catalog) SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	// Load the old state.
	old := c.st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg, npreg := reg, reg != nil
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg)
	}

	// Resolver
	nres, npres := res, res != nil
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, nreg, old.res)
	}

	c.publish(&state{cfg: ncfg, reg: nreg, res: nres, bld: nbld, preg: npreg, pres: npres})
}

// Config returns the catalog configuration.
func (c *Catalog) Config() apis.Config {
	return c.st.Load().cfg
}

// SetConfig sets the catalog configuration to cfg and rebuilds the unpinned
// registry and resolver. Definitions created earlier keep the configuration
// they were created with.
func (c *Catalog) SetConfig(cfg apis.Config) {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	old := c.st.Load()
	next := *old
	next.cfg = cfg
	c.rebuild(old, &next)
}

// Registry returns the catalog registry.
func (c *Catalog) Registry() apis.Registry {
	return c.st.Load().reg
}

// SetRegistry sets and pins the catalog registry, rebuilding the resolver
// unless it is pinned.
func (c *Catalog) SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	old := c.st.Load()
	next := *old
	next.reg, next.preg = reg, true
	c.rebuild(old, &next)
}

// Resolver returns the catalog resolver.
func (c *Catalog) Resolver() apis.Resolver {
	return c.st.Load().res
}

// SetResolver sets and pins the catalog resolver.
func (c *Catalog) SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	next := *c.st.Load()
	next.res, next.pres = res, true
	c.publish(&next)
}

// Builder returns the catalog builder.
func (c *Catalog) Builder() apis.Builder {
	return c.st.Load().bld
}

// SetBuilder sets the catalog builder and rebuilds the unpinned layers.
func (c *Catalog) SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	old := c.st.Load()
	next := *old
	next.bld = b
	c.rebuild(old, &next)
}

// IsRegistryPinned returns whether the registry is pinned.
func (c *Catalog) IsRegistryPinned() bool { return c.st.Load().preg }

// PinRegistry stops the registry from being rebuilt.
func (c *Catalog) PinRegistry() { c.pin(func(s *state) { s.preg = true }) }

// UnpinRegistry lets the registry be rebuilt again.
func (c *Catalog) UnpinRegistry() { c.pin(func(s *state) { s.preg = false }) }

// IsResolverPinned returns whether the resolver is pinned.
func (c *Catalog) IsResolverPinned() bool { return c.st.Load().pres }

// PinResolver stops the resolver from being rebuilt.
func (c *Catalog) PinResolver() { c.pin(func(s *state) { s.pres = true }) }

// UnpinResolver lets the resolver be rebuilt again.
func (c *Catalog) UnpinResolver() { c.pin(func(s *state) { s.pres = false }) }

func (c *Catalog) pin(set func(*state)) {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	next := *c.st.Load()
	set(&next)
	c.st.Store(&next)
}

// rebuild fills the unpinned layers of next with the builder of next.
// Callers hold buildMu.
func (c *Catalog) rebuild(old, next *state) {
	if !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res)
	}
	c.publish(next)
}

// publish validates and stores s. Callers hold buildMu.
func (c *Catalog) publish(s *state) {
	// Ensure non-nil reg and res.
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	c.st.Store(s)
	s.cfg.Log().Info().
		Int("definitions", s.reg.Count()).
		Bool("registry_pinned", s.preg).
		Bool("resolver_pinned", s.pres).
		Msg("catalog reconfigured")
}
