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

package strategy

import (
	"dirpx.dev/model/apis"
	"dirpx.dev/model/utils/naming"
)

// NewPathStrategy creates an apis.Strategy for path-like identifiers. It
// drops leading path segments one at a time until the remainder is
// registered, so "models/shop/book" finds a definition registered as
// "shop/book" or "book".
func NewPathStrategy(reg apis.Registry) apis.Strategy {
	return &pathStrategy{reg: reg}
}

type pathStrategy struct {
	reg apis.Registry
}

var _ apis.Strategy = (*pathStrategy)(nil)

// TryResolve looks up the path suffixes of id, longest first. The full
// identifier itself is left to the registry strategy.
func (s *pathStrategy) TryResolve(id string, _ apis.Config) (apis.Definition, bool) {
	if s.reg == nil {
		return nil, false
	}
	key, err := naming.Normalize(id)
	if err != nil {
		return nil, false
	}
	for _, suffix := range naming.Suffixes(key)[1:] {
		if def, ok := s.reg.Lookup(suffix); ok {
			return def, true
		}
	}
	return nil, false
}
