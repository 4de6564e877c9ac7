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

// Package model is a runtime object-modeling layer.
//
// A program declares entity types as data: a name plus an ordered set of
// typed attributes (primitives, arrays, nested entity types) with optional
// validation rules. The engine then gives every entity the same behavior:
// construction from loosely-typed input, incremental updates, a plain-data
// snapshot, deep structural equality, validation in normal or strict mode
// and deep cloning.
//
// # Packages
//
// The engine lives in subpackages:
//
//   - value: the tagged-union value representation and deep equality.
//   - schema: attribute declarations and their normalization.
//   - validate: the rule-based validator.
//   - entity: definitions, instances, the update/coercion engine and
//     cloning.
//
// This package adds the Catalog, which owns the definitions of a host
// application and the resolver that maps type identifiers to them.
//
// # Catalog
//
// A Catalog is a read-mostly snapshot holding four things:
//
//   - Config: validation defaults, the nesting depth guard, the alias
//     collision policy, the metadata key prefix and the logger.
//
//   - Registry: a mapping from identifiers (names, class tags, path-like
//     strings such as "shop/book") to definitions.
//
//   - Resolver: answers "which definition does this identifier name?".
//     The default resolver tries, in priority order:
//     1. the identifier as registered;
//     2. its path suffixes, so "models/shop/book" finds "book";
//     3. a case and separator insensitive match ("StoreKeeper" finds
//     "store-keeper"), unless Config.FoldNames is off.
//
//   - Builder: a pluggable factory that constructs Registry and Resolver
//     instances for a given Config, migrating entries from the previous
//     registry.
//
// Readers load the current snapshot atomically and never take locks.
// Writers (SetConfig, SetBuilder, SetRegistry, SetResolver, SetAll) take a
// short build mutex, assemble a new snapshot and publish it.
//
// # Pinning
//
// SetRegistry and SetResolver install a layer and pin it: later
// reconfigurations stop rebuilding that layer until it is unpinned with
// UnpinRegistry or UnpinResolver.
//
// # Usage
//
//	c := model.NewCatalog(config.WithDefaultMode(apis.ModeNormal))
//
//	c.Define("Author", schema.Schema{
//		{Name: "name", Decl: schema.String},
//	})
//	c.Define("Book", schema.Schema{
//		{Name: "_class", Decl: "Library.Book"},
//		{Name: "title", Decl: schema.Attr{Type: schema.String, Required: true}},
//		{Name: "tags", Decl: "String[]"},
//		{Name: "author", Decl: "Author"},
//	})
//
//	book, err := c.Parse(map[string]any{
//		"_class": "Library.Book",
//		"title":  "Dune",
//		"author": map[string]any{"name": "Frank Herbert"},
//	})
//
// Definitions created by Define resolve nested types through the catalog,
// so they may refer to definitions registered after them.
package model
