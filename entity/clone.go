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

import "dirpx.dev/model/value"

// Clone returns an independent deep copy of e. No nested instance is shared
// between e and the copy. Null attributes become absent. The copy is built
// through the coercion engine, so its errors are recomputed.
func (e *Entity) Clone() (*Entity, error) {
	tree := make(map[string]value.Value, len(e.fields))
	for i := 0; i < e.table.Len(); i++ {
		d := e.table.At(i)
		v := e.fields[d.Name]
		if v.IsNil() {
			continue
		}
		switch {
		case d.IsPrimitive:
			tree[d.Name] = v.Plain()
		case d.IsArray:
			items := v.Items()
			for j, item := range items {
				c, err := cloneRef(item)
				if err != nil {
					return nil, err
				}
				items[j] = c
			}
			tree[d.Name] = value.List(items...)
		default:
			c, err := cloneRef(v)
			if err != nil {
				return nil, err
			}
			tree[d.Name] = c
		}
	}

	out, err := e.def.blank()
	if err != nil {
		return nil, err
	}
	if err := out.update(objectSource(value.Object(tree)), []*Entity{out}); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneRef(v value.Value) (value.Value, error) {
	n, ok := v.Ref().(*Entity)
	if v.Kind() != value.KindEntity || !ok {
		return v.Plain(), nil
	}
	c, err := n.Clone()
	if err != nil {
		return value.Value{}, err
	}
	return value.EntityRef(c), nil
}
