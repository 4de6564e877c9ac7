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

// Package validate evaluates declarative attribute rules.
//
// Rules are checked in a fixed order: required, min, max, length, values,
// regexp, custom. Every rule except required is skipped for absent or null
// values. In normal mode all violations of an attribute are collected; in
// strict mode the first violation is returned as an *apis.ValidationError.
// A rule applied to a value of the wrong kind (min on a string, length on a
// number, ...) is a usage error and fails with *apis.TypeMismatchError in
// both modes.
package validate

import (
	"maps"
	"slices"
	"unicode/utf8"

	"dirpx.dev/model/apis"
	"dirpx.dev/model/schema"
	"dirpx.dev/model/value"
)

// Rule tags reported in Errors.
const (
	RuleRequired = "required"
	RuleMin      = "min"
	RuleMax      = "max"
	RuleLength   = "length"
	RuleValues   = "values"
	RuleRegexp   = "regexp"
	RuleCustom   = "custom"
)

// Errors maps attribute names to the ordered tags of their violated rules.
// Attributes without violations have no key.
type Errors map[string][]string

// Clone returns a deep copy of e.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, tags := range e {
		out[k] = slices.Clone(tags)
	}
	return out
}

// Attributes returns the names with violations, sorted.
func (e Errors) Attributes() []string {
	return slices.Sorted(maps.Keys(e))
}

// Value checks v against the rules of d. v must be plain data: entity
// references are expected to be unwrapped (see value.Value.Plain).
func Value(d schema.Descriptor, v value.Value, mode apis.ValidationMode) ([]string, error) {
	c := checker{d: d, strict: mode == apis.ModeStrict}
	r := d.Rules

	if r.Required && v.IsNil() {
		if err := c.violate(RuleRequired, nil); err != nil {
			return nil, err
		}
	}
	if v.IsNil() {
		return c.tags, nil
	}

	if r.Min != nil {
		if v.Kind() != value.KindNumber {
			return nil, c.mismatch(v, "number for rule min")
		}
		if v.AsNumber() < *r.Min {
			if err := c.violate(RuleMin, *r.Min); err != nil {
				return nil, err
			}
		}
	}
	if r.Max != nil {
		if v.Kind() != value.KindNumber {
			return nil, c.mismatch(v, "number for rule max")
		}
		if v.AsNumber() > *r.Max {
			if err := c.violate(RuleMax, *r.Max); err != nil {
				return nil, err
			}
		}
	}
	if r.Length != nil {
		if v.Kind() != value.KindString {
			return nil, c.mismatch(v, "string for rule length")
		}
		if utf8.RuneCountInString(v.AsString()) > *r.Length {
			if err := c.violate(RuleLength, *r.Length); err != nil {
				return nil, err
			}
		}
	}
	if r.HasValues {
		for _, allowed := range r.Values {
			if allowed.Kind() != v.Kind() {
				return nil, c.mismatch(v, "value of the allowed set's kind ("+allowed.Kind().String()+") for rule values")
			}
		}
		if !slices.ContainsFunc(r.Values, func(allowed value.Value) bool { return value.Equal(allowed, v) }) {
			if err := c.violate(RuleValues, plain(r.Values)); err != nil {
				return nil, err
			}
		}
	}
	if r.Regexp != nil {
		if v.Kind() != value.KindString {
			return nil, c.mismatch(v, "string for rule regexp")
		}
		if !r.Regexp.MatchString(v.AsString()) {
			if err := c.violate(RuleRegexp, r.Regexp.String()); err != nil {
				return nil, err
			}
		}
	}
	if r.Custom != nil && !r.Custom(v.Interface()) {
		if err := c.violate(RuleCustom, nil); err != nil {
			return nil, err
		}
	}
	return c.tags, nil
}

// Table validates every attribute of t in declaration order. get returns
// the current plain value of an attribute (Absent if unset).
func Table(t *schema.Table, get func(name string) value.Value, mode apis.ValidationMode) (Errors, error) {
	errs := Errors{}
	for i := 0; i < t.Len(); i++ {
		d := t.At(i)
		tags, err := Value(d, get(d.Name), mode)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			errs[d.Name] = tags
		}
	}
	return errs, nil
}

type checker struct {
	d      schema.Descriptor
	strict bool
	tags   []string
}

func (c *checker) violate(rule string, param any) error {
	if c.strict {
		return &apis.ValidationError{Attribute: c.d.Name, Rule: rule, Param: param}
	}
	c.tags = append(c.tags, rule)
	return nil
}

func (c *checker) mismatch(v value.Value, expected string) error {
	return &apis.TypeMismatchError{Attribute: c.d.Name, Value: v.Interface(), Expected: expected}
}

func plain(vs []value.Value) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v.Interface()
	}
	return out
}
