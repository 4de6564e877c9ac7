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

package builder

import (
	"dirpx.dev/model/apis"
	"dirpx.dev/model/registry"
	"dirpx.dev/model/resolver"
	"dirpx.dev/model/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided configuration
// and pre-existing registry. If a pre-existing registry is provided, its entries are copied
// into the new registry.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, e := range preg.Entries() {
			if err := nreg.Register(e.Name, e.Definition); err != nil {
				cfg.Log().Warn().Err(err).Str("name", e.Name).Msg("definition not migrated")
			}
		}
	}
	return nreg
}

// BuildResolver builds the default strategy chain over reg: exact registry
// lookup, then path suffixes, then folded names when cfg.FoldNames is set.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver) apis.Resolver {
	strats := []apis.Strategy{
		strategy.NewRegistryStrategy(reg),
		strategy.NewPathStrategy(reg),
	}
	if cfg.FoldNames {
		strats = append(strats, strategy.NewFoldStrategy(reg))
	}
	return resolver.New(strats...)
}
