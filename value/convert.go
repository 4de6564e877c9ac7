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
	"errors"
	"fmt"
	"reflect"
)

// ErrUnsupported is returned when loose input holds a Go value that has no
// Value representation (funcs, channels, structs without Ref, ...).
var ErrUnsupported = errors.New("model(value): unsupported Go value")

// From converts loosely-typed Go data (as produced by encoding/json or
// yaml.v3) into a Value. Accepted inputs: nil, Value, Ref, string, bool,
// all integer and float kinds, maps with string keys, slices and arrays.
// Typed nil pointers and nil maps/slices convert to Null.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case Ref:
		if isNilPointer(t) {
			return Null(), nil
		}
		return EntityRef(t), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Number(float64(t)), nil
	case map[string]any:
		if t == nil {
			return Null(), nil
		}
		m := make(map[string]Value, len(t))
		for k, e := range t {
			ev, err := From(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = ev
		}
		return Value{kind: KindObject, obj: m}, nil
	case []any:
		if t == nil {
			return Null(), nil
		}
		items := make([]Value, len(t))
		for i, e := range t {
			ev, err := From(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = ev
		}
		return Value{kind: KindList, list: items}, nil
	}
	return fromReflect(reflect.ValueOf(x))
}

// MustFrom is like From but panics on unsupported input. Intended for tests
// and package-level literals.
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic(err)
	}
	return v
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return From(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		fallthrough
	case reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			ev, err := From(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			items[i] = ev
		}
		return Value{kind: KindList, list: items}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return Null(), nil
		}
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			ev, err := From(iter.Value().Interface())
			if err != nil {
				return Value{}, err
			}
			m[iter.Key().String()] = ev
		}
		return Value{kind: KindObject, obj: m}, nil
	}
	if !rv.IsValid() {
		return Null(), nil
	}
	return Value{}, fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
}

func isNilPointer(r Ref) bool {
	rv := reflect.ValueOf(r)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Interface returns the plain-data view of v: nil, string, float64, bool,
// map[string]any or []any. Entity references are unwrapped through their
// Snapshot.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBoolean:
		return v.b
	case KindObject:
		m := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			m[k] = e.Interface()
		}
		return m
	case KindList:
		items := make([]any, len(v.list))
		for i, e := range v.list {
			items[i] = e.Interface()
		}
		return items
	case KindEntity:
		return v.ref.Snapshot().Interface()
	}
	return nil
}

// Plain returns v with every entity reference replaced by its snapshot.
func (v Value) Plain() Value {
	switch v.kind {
	case KindEntity:
		return v.ref.Snapshot()
	case KindObject:
		m := make(map[string]Value, len(v.obj))
		for k, e := range v.obj {
			m[k] = e.Plain()
		}
		return Value{kind: KindObject, obj: m}
	case KindList:
		items := make([]Value, len(v.list))
		for i, e := range v.list {
			items[i] = e.Plain()
		}
		return Value{kind: KindList, list: items}
	}
	return v
}
