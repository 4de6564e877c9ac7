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

package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"dirpx.dev/model/apis"
	"dirpx.dev/model/value"
)

// Normalizer converts heterogeneous declarations into a Table.
type Normalizer struct {
	// ReservedPrefix marks metadata keys. Empty means no key is reserved.
	ReservedPrefix string
	// Resolve reports whether a custom type identifier can be resolved.
	// Nil skips the check. References by definition are never checked.
	Resolve func(id string) error
}

// Normalize validates s and builds its attribute table. A nil schema is an
// error; an empty one is not.
func (n Normalizer) Normalize(s Schema) (*Table, error) {
	if s == nil {
		return nil, &apis.SchemaError{Reason: "no attributes declared"}
	}
	t := &Table{
		attrs: make([]Descriptor, 0, len(s)),
		index: make(map[string]int, len(s)),
		meta:  make(map[string]any),
	}
	for _, f := range s {
		if f.Name == "" {
			return nil, &apis.SchemaError{Reason: "empty attribute name"}
		}
		if n.ReservedPrefix != "" && strings.HasPrefix(f.Name, n.ReservedPrefix) {
			t.meta[f.Name] = f.Decl
			continue
		}
		if _, dup := t.index[f.Name]; dup {
			return nil, &apis.SchemaError{Attribute: f.Name, Reason: "declared twice"}
		}
		d, err := n.descriptor(f.Name, f.Decl)
		if err != nil {
			return nil, err
		}
		t.index[f.Name] = len(t.attrs)
		t.attrs = append(t.attrs, d)
	}
	return t, nil
}

func (n Normalizer) descriptor(name string, decl any) (Descriptor, error) {
	var a Attr
	switch d := decl.(type) {
	case Attr:
		a = d
	case *Attr:
		if d == nil {
			return Descriptor{}, &apis.SchemaError{Attribute: name, Reason: "type is null"}
		}
		a = *d
	case map[string]any:
		var err error
		if a, err = attrFromMap(name, d); err != nil {
			return Descriptor{}, err
		}
	default:
		if IsArrayShaped(decl) {
			elem, err := singleElement(name, decl)
			if err != nil {
				return Descriptor{}, err
			}
			a = Attr{Type: elem, IsArray: true}
		} else {
			a = Attr{Type: decl}
		}
	}

	typ, arr, err := typeOf(name, a.Type)
	if err != nil {
		return Descriptor{}, err
	}
	if arr && a.IsArray && IsArrayShaped(decl) {
		return Descriptor{}, &apis.SchemaError{Attribute: name, Reason: "nested array types are not supported"}
	}
	if !typ.IsPrimitive() && typ.Definition() == nil && n.Resolve != nil {
		if err := n.Resolve(typ.ID()); err != nil {
			return Descriptor{}, &apis.SchemaError{Attribute: name, Reason: "cannot resolve type " + typ.ID(), Err: err}
		}
	}
	rules, err := rulesOf(name, a)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Name:        name,
		Type:        typ,
		IsArray:     a.IsArray || arr,
		IsPrimitive: typ.IsPrimitive(),
		Rules:       rules,
	}, nil
}

func singleElement(name string, decl any) (any, error) {
	rv := reflect.ValueOf(decl)
	if rv.Len() != 1 {
		return nil, &apis.SchemaError{
			Attribute: name,
			Reason:    fmt.Sprintf("array-of-type needs exactly one element, got %d", rv.Len()),
		}
	}
	return rv.Index(0).Interface(), nil
}

// typeOf reads a bare type. The returned flag reports a "T[]" suffix.
func typeOf(name string, x any) (Type, bool, error) {
	switch t := x.(type) {
	case nil:
		return Type{}, false, &apis.SchemaError{Attribute: name, Reason: "type is null"}
	case Type:
		if t.IsZero() {
			return Type{}, false, &apis.SchemaError{Attribute: name, Reason: "type is null"}
		}
		return t, false, nil
	case string:
		typ, arr, ok := ParseType(t)
		if !ok {
			return Type{}, false, &apis.SchemaError{Attribute: name, Reason: fmt.Sprintf("malformed type %q", t)}
		}
		return typ, arr, nil
	case apis.Definition:
		if rv := reflect.ValueOf(t); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Type{}, false, &apis.SchemaError{Attribute: name, Reason: "type is null"}
		}
		return Ref(t), false, nil
	}
	if IsArrayShaped(x) {
		return Type{}, false, &apis.SchemaError{Attribute: name, Reason: "nested array types are not supported"}
	}
	return Type{}, false, &apis.SchemaError{Attribute: name, Reason: fmt.Sprintf("unsupported type declaration %T", x)}
}

func rulesOf(name string, a Attr) (Rules, error) {
	r := Rules{
		Required: a.Required,
		Min:      clonePtr(a.Min),
		Max:      clonePtr(a.Max),
		Length:   clonePtr(a.Length),
		Custom:   a.Custom,
	}
	if a.Length != nil && *a.Length < 0 {
		return Rules{}, &apis.SchemaError{Attribute: name, Reason: "length must not be negative"}
	}
	if a.Values != nil {
		r.HasValues = true
		r.Values = make([]value.Value, len(a.Values))
		for i, x := range a.Values {
			v, err := value.From(x)
			if err != nil {
				return Rules{}, &apis.SchemaError{Attribute: name, Reason: "allowed values", Err: err}
			}
			r.Values[i] = v
		}
	}
	if a.Regexp != "" {
		re, err := regexp.Compile(a.Regexp)
		if err != nil {
			return Rules{}, &apis.SchemaError{Attribute: name, Reason: "regexp", Err: err}
		}
		r.Regexp = re
	}
	return r, nil
}

// clonePtr detaches a rule bound from the caller's declaration.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
