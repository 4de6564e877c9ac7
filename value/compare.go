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
	"cmp"
	"slices"
	"strings"
)

// Compare defines a total order over values, used to sort-normalize
// sequences before comparing them. Values of different kinds order by kind.
// Sequences compare by their sorted items, so two sequences holding the same
// items in a different order compare equal.
func Compare(a, b Value) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	switch a.kind {
	case KindString:
		return strings.Compare(a.str, b.str)
	case KindNumber:
		return cmp.Compare(a.num, b.num)
	case KindBoolean:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case KindList:
		return compareItems(sortedCopy(a.list), sortedCopy(b.list))
	case KindObject:
		ak, bk := a.Keys(), b.Keys()
		if c := slices.Compare(ak, bk); c != 0 {
			return c
		}
		for _, k := range ak {
			if c := Compare(a.obj[k], b.obj[k]); c != 0 {
				return c
			}
		}
		return 0
	case KindEntity:
		if c := strings.Compare(a.ref.TypeName(), b.ref.TypeName()); c != 0 {
			return c
		}
		return Compare(a.ref.Snapshot(), b.ref.Snapshot())
	}
	return 0
}

func compareItems(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func sortedCopy(items []Value) []Value {
	out := slices.Clone(items)
	slices.SortStableFunc(out, Compare)
	return out
}
