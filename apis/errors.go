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

package apis

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema marks failures detected while normalizing a schema:
	// missing or null types, malformed array-of-type shapes, unresolvable
	// custom types.
	ErrSchema = errors.New("model: invalid schema")
	// ErrTypeMismatch marks values whose runtime shape does not satisfy the
	// declared type, or the value kind a validation rule requires.
	ErrTypeMismatch = errors.New("model: invalid type")
	// ErrValidation marks a rule violation raised in strict mode.
	ErrValidation = errors.New("model: validation failed")
	// ErrUnresolvable is returned by resolvers that cannot map an identifier
	// to a definition.
	ErrUnresolvable = errors.New("model: cannot resolve type")
	// ErrCycle is returned when an assignment would make an entity contain
	// itself.
	ErrCycle = errors.New("model: assignment would create a cycle")
	// ErrDepthExceeded is returned when nested construction exceeds
	// Config.MaxDepth.
	ErrDepthExceeded = errors.New("model: maximum nesting depth exceeded")
)

// SchemaError describes a malformed attribute declaration.
type SchemaError struct {
	// Attribute is the offending attribute name, empty for schema-level errors.
	Attribute string
	// Reason is a short human-readable explanation.
	Reason string
	// Err is an optional underlying cause.
	Err error
}

func (e *SchemaError) Error() string {
	msg := "model: invalid schema"
	if e.Attribute != "" {
		msg += " at attribute " + e.Attribute
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrSchema.
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// Unwrap returns the underlying cause.
func (e *SchemaError) Unwrap() error { return e.Err }

// TypeMismatchError carries the attribute and value that failed a type check.
type TypeMismatchError struct {
	Attribute string
	Value     any
	// Expected names the required type or value kind.
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("model: invalid type for attribute %q: want %s, got %T (%v)",
		e.Attribute, e.Expected, e.Value, e.Value)
}

// Is matches ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// ValidationError is the strict-mode failure for a single violated rule.
type ValidationError struct {
	Attribute string
	// Rule is the violated rule tag, e.g. "min" or "required".
	Rule string
	// Param is the rule parameter (bound, pattern, allowed set...).
	Param any
}

func (e *ValidationError) Error() string {
	if e.Param == nil {
		return fmt.Sprintf("model: attribute %q violates rule %q", e.Attribute, e.Rule)
	}
	return fmt.Sprintf("model: attribute %q violates rule %q (%v)", e.Attribute, e.Rule, e.Param)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
