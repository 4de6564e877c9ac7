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

// Definition is a constructible entity type known to a Registry.
// The concrete implementation lives in package entity; registries and
// resolvers only carry it around.
type Definition interface {
	// TypeName returns the class tag of the definition.
	TypeName() string
}

// Registry maps type identifiers to entity definitions.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register associates name with def. Re-registering the same pair is a
	// no-op; a different definition under a taken name follows the
	// IgnoreDuplicate policy of the registry's Config.
	Register(name string, def Definition) error
	// Lookup returns the definition registered under name, if any.
	Lookup(name string) (def Definition, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (name, definition) association in a Registry snapshot.
type Entry struct {
	// Name is the registered identifier.
	Name string
	// Definition is the associated definition.
	Definition Definition
}
