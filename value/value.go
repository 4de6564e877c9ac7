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

package value

import (
	"maps"
	"slices"
	"strconv"
)

// Kind is the runtime tag of a Value.
type Kind uint8

const (
	// KindAbsent is the zero Kind: the attribute or key is not present.
	KindAbsent Kind = iota
	// KindNull is an explicit null.
	KindNull
	// KindString holds a string.
	KindString
	// KindNumber holds a float64.
	KindNumber
	// KindBoolean holds a bool.
	KindBoolean
	// KindObject holds a keyed structure of values.
	KindObject
	// KindList holds a sequence of values.
	KindList
	// KindEntity holds a reference to an entity instance.
	KindEntity
)

var kindNames = [...]string{"absent", "null", "string", "number", "boolean", "object", "list", "entity"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Ref is implemented by entity instances that can be held in a Value.
type Ref interface {
	// TypeName returns the class tag of the instance's definition.
	TypeName() string
	// EqualRef reports structural equality with another instance.
	EqualRef(other Ref) bool
	// Snapshot returns the plain-data (entity-free) object view.
	Snapshot() Value
}

// Value is a tagged union over the attribute value kinds.
// The zero Value is Absent.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  map[string]Value
	list []Value
	ref  Ref
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a number value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Object returns an object value owning a copy of fields.
func Object(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	maps.Copy(m, fields)
	return Value{kind: KindObject, obj: m}
}

// List returns a sequence value owning a copy of items.
func List(items ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// EntityRef wraps an entity instance. A nil ref yields Null.
func EntityRef(r Ref) Value {
	if r == nil {
		return Null()
	}
	return Value{kind: KindEntity, ref: r}
}

// Kind returns the tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the zero Value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNull reports whether v is an explicit null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNil reports whether v is absent or null.
func (v Value) IsNil() bool { return v.kind == KindAbsent || v.kind == KindNull }

// AsString returns the string payload ("" for other kinds).
func (v Value) AsString() string { return v.str }

// AsNumber returns the number payload (0 for other kinds).
func (v Value) AsNumber() float64 { return v.num }

// AsBool returns the boolean payload (false for other kinds).
func (v Value) AsBool() bool { return v.b }

// Ref returns the entity payload (nil for other kinds).
func (v Value) Ref() Ref { return v.ref }

// Len returns the number of items of a List or fields of an Object.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindObject:
		return len(v.obj)
	}
	return 0
}

// Items returns a copy of the sequence payload.
func (v Value) Items() []Value { return slices.Clone(v.list) }

// Fields returns a copy of the object payload.
func (v Value) Fields() map[string]Value {
	if v.kind != KindObject {
		return nil
	}
	m := make(map[string]Value, len(v.obj))
	maps.Copy(m, v.obj)
	return m
}

// Field returns the value stored under key, Absent if none.
func (v Value) Field(key string) Value { return v.obj[key] }

// Keys returns the object keys in sorted order.
func (v Value) Keys() []string {
	return slices.Sorted(maps.Keys(v.obj))
}
