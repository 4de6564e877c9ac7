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

// Package entity implements the attribute-driven object engine.
//
// A Definition is the data form of a concrete entity type: a name plus an
// attribute schema. Its schema is normalized once, lazily, on first use.
// An Entity is an instance of a Definition holding one typed field per
// declared attribute. Entities are constructed and mutated only through
// the coercion engine (New, Update, SetValues), which checks every incoming
// value against its attribute descriptor, instantiates nested entities from
// plain objects and refreshes the cached validation errors.
//
// Entities provide no internal locking. A host sharing an instance between
// goroutines must serialize access to it.
package entity
