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
	"math"
	"reflect"
	"strings"

	"dirpx.dev/model/apis"
	"dirpx.dev/model/value"
)

// Primitive enumerates the built-in primitive attribute types.
type Primitive uint8

const (
	// NotPrimitive marks a custom entity type.
	NotPrimitive Primitive = iota
	// PrimString accepts strings.
	PrimString
	// PrimNumber accepts numbers other than NaN.
	PrimNumber
	// PrimBoolean accepts booleans.
	PrimBoolean
	// PrimObject accepts keyed objects and sequences.
	PrimObject
)

var primitiveTags = map[string]Primitive{
	"String":  PrimString,
	"Number":  PrimNumber,
	"Boolean": PrimBoolean,
	"Object":  PrimObject,
	"string":  PrimString,
	"number":  PrimNumber,
	"boolean": PrimBoolean,
	"object":  PrimObject,
}

func (p Primitive) String() string {
	switch p {
	case PrimString:
		return "String"
	case PrimNumber:
		return "Number"
	case PrimBoolean:
		return "Boolean"
	case PrimObject:
		return "Object"
	}
	return "custom"
}

// Accepts reports whether v passes the structural check of p.
// Null is accepted by every primitive.
func (p Primitive) Accepts(v value.Value) bool {
	switch v.Kind() {
	case value.KindNull:
		return p != NotPrimitive
	case value.KindString:
		return p == PrimString
	case value.KindNumber:
		return p == PrimNumber && !math.IsNaN(v.AsNumber())
	case value.KindBoolean:
		return p == PrimBoolean
	case value.KindObject, value.KindList:
		return p == PrimObject
	}
	return false
}

// Type is either a primitive tag or a reference to an entity type, given by
// identifier (resolved through an apis.Resolver) or by definition.
type Type struct {
	prim Primitive
	id   string
	def  apis.Definition
}

var (
	// String is the string primitive tag.
	String = Type{prim: PrimString}
	// Number is the number primitive tag.
	Number = Type{prim: PrimNumber}
	// Boolean is the boolean primitive tag.
	Boolean = Type{prim: PrimBoolean}
	// Object is the generic-object primitive tag.
	Object = Type{prim: PrimObject}
)

// Named references a custom entity type by identifier.
func Named(id string) Type { return Type{id: id} }

// Ref references a custom entity type by definition.
func Ref(def apis.Definition) Type { return Type{def: def} }

// IsZero reports whether t names no type at all.
func (t Type) IsZero() bool { return t.prim == NotPrimitive && t.id == "" && t.def == nil }

// IsPrimitive reports whether t is one of the built-in primitive tags.
func (t Type) IsPrimitive() bool { return t.prim != NotPrimitive }

// Primitive returns the primitive tag, NotPrimitive for custom types.
func (t Type) Primitive() Primitive { return t.prim }

// ID returns the identifier of a custom type. For definition references it
// is the definition's class tag.
func (t Type) ID() string {
	if t.def != nil {
		return t.def.TypeName()
	}
	return t.id
}

// Definition returns the referenced definition, nil for identifiers and
// primitives.
func (t Type) Definition() apis.Definition { return t.def }

func (t Type) String() string {
	if t.IsPrimitive() {
		return t.prim.String()
	}
	return t.ID()
}

// IsPrimitive reports whether t is one of the four built-in primitive tags.
func IsPrimitive(t Type) bool { return t.IsPrimitive() }

// IsArrayShaped reports whether x is a sequence container: a Go slice or
// array, or a List value. Strings and keyed structures are not.
func IsArrayShaped(x any) bool {
	switch t := x.(type) {
	case nil:
		return false
	case value.Value:
		return t.Kind() == value.KindList
	}
	k := reflect.TypeOf(x).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// ParseType reads a textual type: one of the primitive tags, or any other
// identifier for a custom type. A trailing "[]" means array-of.
func ParseType(s string) (t Type, isArray bool, ok bool) {
	s = strings.TrimSpace(s)
	if base, found := strings.CutSuffix(s, "[]"); found {
		s, isArray = strings.TrimSpace(base), true
	}
	if s == "" || strings.HasSuffix(s, "[]") {
		return Type{}, false, false
	}
	if p, found := primitiveTags[s]; found {
		return Type{prim: p}, isArray, true
	}
	return Named(s), isArray, true
}
