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

	"github.com/davecgh/go-spew/spew"

	"dirpx.dev/model/apis"
	"dirpx.dev/model/config"
	"dirpx.dev/model/schema"
	"dirpx.dev/model/validate"
	"dirpx.dev/model/value"
)

// Entity is an instance of a Definition.
type Entity struct {
	def    *Definition
	table  *schema.Table
	fields map[string]value.Value
	errors validate.Errors
}

var _ value.Ref = (*Entity)(nil)

// Definition returns the definition e was constructed from.
func (e *Entity) Definition() *Definition { return e.def }

// TypeName returns the class tag of e's definition.
func (e *Entity) TypeName() string { return e.def.TypeName() }

// Get returns the current value of an attribute, Absent if it is unset or
// not declared. Nested entities are returned as entity references.
func (e *Entity) Get(name string) value.Value { return e.fields[name] }

// Values returns the plain-data snapshot of e. Nested entities are
// unwrapped recursively; absent attributes have no key.
func (e *Entity) Values() map[string]any {
	out := make(map[string]any, len(e.fields))
	for i := 0; i < e.table.Len(); i++ {
		name := e.table.At(i).Name
		if v, ok := e.fields[name]; ok {
			out[name] = v.Interface()
		}
	}
	return out
}

// Snapshot returns Values as an object value.
func (e *Entity) Snapshot() value.Value {
	out := make(map[string]value.Value, len(e.fields))
	for name, v := range e.fields {
		out[name] = v.Plain()
	}
	return value.Object(out)
}

// SetValues replaces the state of e: attributes missing from values become
// absent, the others are updated.
func (e *Entity) SetValues(values map[string]any) error {
	for i := 0; i < e.table.Len(); i++ {
		name := e.table.At(i).Name
		if _, ok := values[name]; !ok {
			delete(e.fields, name)
		}
	}
	if values == nil {
		return e.refresh()
	}
	return e.Update(values)
}

// Equals reports whether other has the same definition and structurally
// equal attributes.
func (e *Entity) Equals(other *Entity) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.def != other.def {
		return false
	}
	if e == other {
		return true
	}
	c := value.Comparer{InPlace: e.def.cfg.SortInPlace}
	for i := 0; i < e.table.Len(); i++ {
		name := e.table.At(i).Name
		if !c.Equal(e.fields[name], other.fields[name]) {
			return false
		}
	}
	return true
}

// EqualRef implements value.Ref.
func (e *Entity) EqualRef(other value.Ref) bool {
	o, ok := other.(*Entity)
	return ok && e.Equals(o)
}

// Validate recomputes the error map from the current values, replacing the
// cached one. An empty mode uses the definition's default mode. In strict
// mode the first violation is returned as *apis.ValidationError and the
// cached map is left untouched. An unknown mode fails with
// config.ErrInvalidMode.
func (e *Entity) Validate(mode apis.ValidationMode) (validate.Errors, error) {
	if mode == "" {
		mode = e.def.cfg.DefaultMode
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidMode, mode)
	}
	errs, err := validate.Table(e.table, e.plain, mode)
	if err != nil {
		return nil, err
	}
	e.errors = errs
	return errs.Clone(), nil
}

// HasErrors reports whether a normal-mode validation of the current values
// finds any violation. A rule applied to a value of the wrong kind counts
// as an error.
func (e *Entity) HasErrors() bool {
	errs, err := e.Validate(apis.ModeNormal)
	return err != nil || len(errs) > 0
}

// Errors returns a copy of the error map cached by the last update or
// validation.
func (e *Entity) Errors() validate.Errors { return e.errors.Clone() }

// Dump renders the values snapshot for debugging, with sorted keys.
func (e *Entity) Dump() string {
	cs := spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	return e.TypeName() + " " + cs.Sdump(e.Values())
}

func (e *Entity) plain(name string) value.Value { return e.fields[name].Plain() }

func (e *Entity) refresh() error {
	_, err := e.Validate(apis.ModeNormal)
	return err
}
