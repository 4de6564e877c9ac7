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
	"math"
	"reflect"

	"dirpx.dev/model/apis"
	"dirpx.dev/model/value"
)

// attrFromMap reads the descriptor shape from loosely-typed data, as found
// in JSON or YAML schema documents.
func attrFromMap(name string, m map[string]any) (Attr, error) {
	var a Attr
	typ, ok := m["type"]
	if !ok || typ == nil {
		return Attr{}, &apis.SchemaError{Attribute: name, Reason: "type is null"}
	}
	a.Type = typ

	for k, x := range m {
		var err error
		switch k {
		case "type":
		case "isArray", "is_array":
			a.IsArray, err = boolOf(x)
		case "required":
			a.Required, err = boolOf(x)
		case "min":
			a.Min, err = numberOf(x)
		case "max":
			a.Max, err = numberOf(x)
		case "length":
			var n *float64
			if n, err = numberOf(x); err == nil {
				if *n != math.Trunc(*n) {
					err = fmt.Errorf("want an integer, got %v", *n)
				} else {
					a.Length = Ptr(int(*n))
				}
			}
		case "values":
			if !IsArrayShaped(x) {
				err = fmt.Errorf("want a list, got %T", x)
				break
			}
			rv := reflect.ValueOf(x)
			a.Values = make([]any, rv.Len())
			for i := range a.Values {
				a.Values[i] = rv.Index(i).Interface()
			}
		case "regexp":
			s, isString := x.(string)
			if !isString {
				err = fmt.Errorf("want a string, got %T", x)
			}
			a.Regexp = s
		case "custom":
			fn, isFunc := x.(func(any) bool)
			if !isFunc {
				err = fmt.Errorf("want func(any) bool, got %T", x)
			}
			a.Custom = fn
		default:
			err = fmt.Errorf("unknown key")
		}
		if err != nil {
			return Attr{}, &apis.SchemaError{Attribute: name, Reason: "descriptor key " + k, Err: err}
		}
	}
	return a, nil
}

func boolOf(x any) (bool, error) {
	b, ok := x.(bool)
	if !ok {
		return false, fmt.Errorf("want a boolean, got %T", x)
	}
	return b, nil
}

func numberOf(x any) (*float64, error) {
	v, err := value.From(x)
	if err != nil || v.Kind() != value.KindNumber {
		return nil, fmt.Errorf("want a number, got %T", x)
	}
	return Ptr(v.AsNumber()), nil
}
