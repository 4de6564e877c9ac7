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

// Package value is the tagged-union representation of attribute values.
//
// A Value is one of: Absent (the zero Value, "no such key"), Null, String,
// Number, Boolean, Object (keyed structure), List (sequence) or Entity (a
// reference to an entity instance). Representing "is this already an
// instance of T" as a tag lets the coercion engine compare kinds instead of
// probing shapes at runtime.
//
// The package also hosts the deep equality engine. Sequences compare
// order-insensitively; by default the comparison sorts copies, while
// Comparer{InPlace: true} sorts the compared sequences themselves.
//
// Values are not safe for concurrent mutation; Items and Fields return
// copies so callers cannot change a Value behind its owner's back.
package value
