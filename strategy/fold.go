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

// NewFoldStrategy creates an apis.Strategy that matches identifiers ignoring
// case and separators (see naming.Fold). Registered names are compared both
// whole and by their last path segment. An identifier matching entries
// bound to different definitions is ambiguous and falls through.
func NewFoldStrategy(reg apis.Registry) apis.Strategy {
	return &foldStrategy{reg: reg}
}

type foldStrategy struct {
	reg apis.Registry
}

var _ apis.Strategy = (*foldStrategy)(nil)

// TryResolve scans the registry for a folded match. It is disabled when
// cfg.FoldNames is false.
func (s *foldStrategy) TryResolve(id string, cfg apis.Config) (apis.Definition, bool) {
	if s.reg == nil || !cfg.FoldNames {
		return nil, false
	}
	key, err := naming.Normalize(id)
	if err != nil {
		return nil, false
	}
	want, wantBase := naming.Fold(key), naming.Fold(naming.Base(key))

	var found apis.Definition
	for _, e := range s.reg.Entries() {
		name := naming.Fold(e.Name)
		if name != want && naming.Fold(naming.Base(e.Name)) != wantBase {
			continue
		}
		if found != nil && found != e.Definition {
			return nil, false
		}
		found = e.Definition
	}
	return found, found != nil
}
