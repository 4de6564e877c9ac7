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
	"regexp"

	"dirpx.dev/model/value"
)

// Field is one raw attribute declaration. Decl takes one of three shapes:
//   - a bare type: Type, apis.Definition, or a string ("Number", "Book",
//     "String[]");
//   - a single-element slice holding a bare type, meaning array-of;
//   - a descriptor: Attr, *Attr, or map[string]any with a "type" key plus
//     optional "isArray" and rule keys.
type Field struct {
	Name string
	Decl any
}

// Schema is an ordered list of attribute declarations. Declaration order is
// the order in which updates and validations visit attributes.
type Schema []Field

// Attr is the descriptor shape of a declaration.
type Attr struct {
	// Type is a Type, an apis.Definition or a textual type.
	Type    any
	IsArray bool

	Required bool
	// Min and Max bound numeric values.
	Min, Max *float64
	// Length bounds string length in characters.
	Length *int
	// Values is the allowed-value set.
	Values []any
	// Regexp is a pattern strings must match.
	Regexp string
	// Custom is a predicate over the plain-data value; returning false is a
	// violation.
	Custom func(v any) bool
}

// Ptr returns a pointer to v, handy for Min, Max and Length.
func Ptr[T any](v T) *T { return &v }

// Rules is the normalized validation rule set of an attribute.
type Rules struct {
	Required bool
	Min, Max *float64
	Length   *int
	// HasValues distinguishes a declared empty allowed set from none.
	HasValues bool
	Values    []value.Value
	Regexp    *regexp.Regexp
	Custom    func(v any) bool
}

// Descriptor is the normalized declaration of one attribute.
type Descriptor struct {
	Name        string
	Type        Type
	IsArray     bool
	IsPrimitive bool
	Rules       Rules
}

// Table is the immutable result of normalizing a Schema.
type Table struct {
	attrs []Descriptor
	index map[string]int
	meta  map[string]any
}

// Len returns the number of attributes.
func (t *Table) Len() int { return len(t.attrs) }

// At returns the i-th attribute in declaration order.
func (t *Table) At(i int) Descriptor { return t.attrs[i] }

// Lookup returns the descriptor of the named attribute.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	i, ok := t.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return t.attrs[i], true
}

// Names returns attribute names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.attrs))
	for i, d := range t.attrs {
		names[i] = d.Name
	}
	return names
}

// Descriptors returns a copy of all descriptors in declaration order.
func (t *Table) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.attrs))
	copy(out, t.attrs)
	return out
}

// Meta returns a metadata entry (a reserved-prefix key) by its full key.
func (t *Table) Meta(key string) (any, bool) {
	v, ok := t.meta[key]
	return v, ok
}
