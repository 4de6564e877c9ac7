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

	"dirpx.dev/model/apis"
	"dirpx.dev/model/schema"
	"dirpx.dev/model/value"
)

// source yields the incoming value of an attribute. ok is false when the
// attribute is not present in the input.
type source func(name string) (v value.Value, ok bool, err error)

func mapSource(m map[string]any) source {
	if m == nil {
		return nil
	}
	return func(name string) (value.Value, bool, error) {
		raw, ok := m[name]
		if !ok {
			return value.Value{}, false, nil
		}
		v, err := value.From(raw)
		if err != nil {
			return value.Value{}, true, &apis.TypeMismatchError{Attribute: name, Value: raw, Expected: "plain data"}
		}
		return v, true, nil
	}
}

func objectSource(obj value.Value) source {
	if obj.IsNil() {
		return nil
	}
	return func(name string) (value.Value, bool, error) {
		v := obj.Field(name)
		return v, !v.IsAbsent(), nil
	}
}

// Update applies values to e attribute by attribute, in declaration order,
// then refreshes the cached validation errors. Keys that are not declared
// attributes are ignored; a nil map is a no-op.
//
// Update is not atomic: when an attribute is rejected, attributes applied
// earlier in the same call keep their new values and validation is not
// refreshed. The rejected attribute itself keeps its previous value.
func (e *Entity) Update(values map[string]any) error {
	return e.update(mapSource(values), []*Entity{e})
}

// update applies src to e. path holds the entities under construction from
// the outermost one down to e.
func (e *Entity) update(src source, path []*Entity) error {
	if src == nil {
		return nil
	}
	for i := 0; i < e.table.Len(); i++ {
		d := e.table.At(i)
		in, ok, err := src(d.Name)
		if !ok {
			continue
		}
		if err == nil {
			var v value.Value
			if v, err = e.coerce(d, in, path); err == nil {
				e.fields[d.Name] = v
				continue
			}
		}
		e.def.log().Debug().Str("attribute", d.Name).Err(err).Msg("update rejected")
		return err
	}
	return e.refresh()
}

func (e *Entity) coerce(d schema.Descriptor, in value.Value, path []*Entity) (value.Value, error) {
	switch {
	case d.IsArray:
		if in.IsNull() {
			return value.List(), nil
		}
		if in.Kind() != value.KindList {
			return value.Value{}, mismatch(d, in)
		}
		items := in.Items()
		for i, item := range items {
			v, err := e.element(d, item, path)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.List(items...), nil
	case d.IsPrimitive:
		if !d.Type.Primitive().Accepts(in) {
			return value.Value{}, mismatch(d, in)
		}
		return in.Plain(), nil
	}
	target, err := e.def.target(d.Type)
	if err != nil {
		return value.Value{}, err
	}
	if n, ok := instanceOf(in, target); ok {
		return e.adopt(n, path)
	}
	if in.Kind() != value.KindObject && !in.IsNull() {
		return value.Value{}, mismatch(d, in)
	}
	return e.construct(d, target, in, path)
}

// element coerces one item of an array attribute. Null items are kept.
func (e *Entity) element(d schema.Descriptor, item value.Value, path []*Entity) (value.Value, error) {
	if item.IsNull() {
		return item, nil
	}
	if d.IsPrimitive {
		if !d.Type.Primitive().Accepts(item) {
			return value.Value{}, mismatch(d, item)
		}
		return item.Plain(), nil
	}
	target, err := e.def.target(d.Type)
	if err != nil {
		return value.Value{}, err
	}
	if n, ok := instanceOf(item, target); ok {
		return e.adopt(n, path)
	}
	if item.Kind() != value.KindObject {
		return value.Value{}, mismatch(d, item)
	}
	return e.construct(d, target, item, path)
}

// construct builds a nested entity of target from a plain object or null.
func (e *Entity) construct(d schema.Descriptor, target *Definition, obj value.Value, path []*Entity) (value.Value, error) {
	if len(path) > e.def.cfg.MaxDepth {
		return value.Value{}, fmt.Errorf("%w: attribute %q at depth %d", apis.ErrDepthExceeded, d.Name, len(path))
	}
	n, err := target.blank()
	if err != nil {
		return value.Value{}, err
	}
	if src := objectSource(obj); src != nil {
		err = n.update(src, append(path[:len(path):len(path)], n))
	} else {
		err = n.refresh()
	}
	if err != nil {
		return value.Value{}, err
	}
	e.def.log().Debug().Str("attribute", d.Name).Str("type", target.TypeName()).Msg("nested entity coerced")
	return value.EntityRef(n), nil
}

// adopt accepts an existing instance unless it is, or contains, an entity
// on path.
func (e *Entity) adopt(n *Entity, path []*Entity) (value.Value, error) {
	for _, p := range path {
		if n.reaches(p) {
			return value.Value{}, fmt.Errorf("%w: %s instance", apis.ErrCycle, n.TypeName())
		}
	}
	return value.EntityRef(n), nil
}

// reaches reports whether e is target or holds it at any depth.
func (e *Entity) reaches(target *Entity) bool {
	if e == target {
		return true
	}
	for _, v := range e.fields {
		if refers(v, target) {
			return true
		}
	}
	return false
}

func refers(v value.Value, target *Entity) bool {
	switch v.Kind() {
	case value.KindEntity:
		n, ok := v.Ref().(*Entity)
		return ok && n.reaches(target)
	case value.KindList:
		for _, item := range v.Items() {
			if refers(item, target) {
				return true
			}
		}
	}
	return false
}

func instanceOf(v value.Value, def *Definition) (*Entity, bool) {
	if v.Kind() != value.KindEntity {
		return nil, false
	}
	n, ok := v.Ref().(*Entity)
	if !ok || n == nil || n.def != def {
		return nil, false
	}
	return n, true
}

func mismatch(d schema.Descriptor, v value.Value) error {
	expected := d.Type.String()
	switch {
	case d.IsArray:
		expected = "sequence of " + expected
	case !d.IsPrimitive:
		expected += " or object"
	}
	return &apis.TypeMismatchError{Attribute: d.Name, Value: v.Interface(), Expected: expected}
}
