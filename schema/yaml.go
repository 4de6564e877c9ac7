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

package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrDocument is returned for schema documents that are not a mapping of
// attribute names to declarations.
var ErrDocument = errors.New("model(schema): schema document must be a mapping")

// ParseYAML reads a schema document, keeping declaration order:
//
//	_class: Book
//	title: { type: String, required: true, length: 40 }
//	tags: [String]
//	otherBooks: Book[]
//	pages: Number
func ParseYAML(data []byte) (Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("model(schema): decode: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, ErrDocument
	}
	root := doc.Content[0]
	s := make(Schema, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, node := root.Content[i], root.Content[i+1]
		decl, err := declOf(node)
		if err != nil {
			return nil, fmt.Errorf("model(schema): attribute %s (line %d): %w", key.Value, node.Line, err)
		}
		s = append(s, Field{Name: key.Value, Decl: decl})
	}
	return s, nil
}

func declOf(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return node.Value, nil
	case yaml.SequenceNode:
		var items []any
		if err := node.Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	case yaml.MappingNode:
		var m map[string]any
		if err := node.Decode(&m); err != nil {
			return nil, err
		}
		return m, nil
	case yaml.AliasNode:
		return declOf(node.Alias)
	}
	return nil, fmt.Errorf("unsupported node kind %v", node.Kind)
}

// FromMap builds a Schema from an unordered map. Attributes are ordered by
// name since maps carry no declaration order.
func FromMap(m map[string]any) Schema {
	if m == nil {
		return nil
	}
	s := make(Schema, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		s = append(s, Field{Name: k, Decl: m[k]})
	}
	return s
}
