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

package registry

import (
	"errors"
	"fmt"
	"sync"

	"dirpx.dev/model/apis"
	"dirpx.dev/model/utils/naming"
)

var (
	// ErrNilDefinition is returned when a nil definition is provided.
	ErrNilDefinition = errors.New("model(registry): nil definition provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("model(registry): empty name provided")
	// ErrAlreadyRegistered indicates an attempt to register another
	// definition under a taken name while IgnoreDuplicate is off.
	ErrAlreadyRegistered = errors.New("model(registry): name already registered")
)

// New constructs a Registry that normalizes names and applies the alias
// collision policy of cfg.
func New(cfg apis.Config) apis.Registry {
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg carries the collision policy and the logger.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps normalized names to definitions.
	m sync.Map // map[string]apis.Definition
	// count tracks the number of registered entries.
	count int
}

// Register associates the normalized form of name with def.
// It is idempotent for the same (name,def) pair.
func (r *registry) Register(name string, def apis.Definition) error {
	// Validate inputs early.
	if def == nil {
		return ErrNilDefinition
	}
	if name == "" {
		return ErrEmptyName
	}
	key, err := naming.Normalize(name)
	if err != nil {
		if errors.Is(err, naming.ErrEmptyName) {
			return ErrEmptyName
		}
		return fmt.Errorf("model(registry): %q: %w", name, err)
	}

	// Fast read path: idempotency check without locking.
	if old, ok := r.m.Load(key); ok && old == def {
		return nil
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	log := r.cfg.Log()
	if old, ok := r.m.Load(key); ok {
		if old == def {
			return nil
		}
		if !r.cfg.IgnoreDuplicate {
			return fmt.Errorf("%w: %q", ErrAlreadyRegistered, key)
		}
		r.m.Store(key, def)
		log.Warn().Str("name", key).
			Str("previous", old.(apis.Definition).TypeName()).
			Str("definition", def.TypeName()).
			Msg("definition overwritten")
		return nil
	}

	r.m.Store(key, def)
	r.count++
	log.Debug().Str("name", key).Str("definition", def.TypeName()).Msg("definition registered")
	return nil
}

// Lookup returns the definition registered under the normalized name.
func (r *registry) Lookup(name string) (apis.Definition, bool) {
	key, err := naming.Normalize(name)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(key); ok {
		return v.(apis.Definition), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Name:       key.(string),
			Definition: value.(apis.Definition),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
