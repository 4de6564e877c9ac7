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

import "slices"

// Comparer is the deep equality engine.
type Comparer struct {
	// InPlace sorts compared sequences in place instead of sorting copies.
	// After a comparison both operands' items are left in sorted order.
	InPlace bool
}

// Equal reports deep structural equality using sorted copies for sequences.
func Equal(a, b Value) bool {
	return Comparer{}.Equal(a, b)
}

// Equal reports whether a and b are structurally equal:
//   - both absent, or both null, are equal; absent and null differ;
//   - differing kinds are unequal;
//   - strings, numbers and booleans use strict equality;
//   - sequences must have the same length and equal items regardless of order;
//   - entity references delegate to the instance's own equality;
//   - objects must have the same key count and equal values per key.
func (c Comparer) Equal(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return a.kind == b.kind
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindAbsent:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindBoolean:
		return a.b == b.b
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		as, bs := a.list, b.list
		if c.InPlace {
			slices.SortStableFunc(as, Compare)
			slices.SortStableFunc(bs, Compare)
		} else {
			as, bs = sortedCopy(as), sortedCopy(bs)
		}
		for i := range as {
			if !c.Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	case KindEntity:
		return a.ref.EqualRef(b.ref)
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !c.Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}
