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

package strategy_test

import (
	"testing"

	"dirpx.dev/model/strategy"
)

func TestPathStrategy_Suffixes(t *testing.T) {
	conf := cfg()
	book, classD := &D{name: "Book"}, &D{name: "ClassD"}
	reg := newRegistry(t, conf, map[string]*D{
		"book":                    book,
		"sub-folder-b/class-d":    classD,
		"models/sub-folder/other": {name: "Other"},
	})
	s := strategy.NewPathStrategy(reg)

	cases := []struct {
		id   string
		want *D
	}{
		{"models/book", book},
		{"./models/shop/book", book},
		{"models/sub-folder-b/class-d", classD},
	}
	for _, tc := range cases {
		got, ok := s.TryResolve(tc.id, conf)
		if !ok || got != tc.want {
			t.Fatalf("TryResolve(%q) = (%v,%v), want (%s,true)", tc.id, got, ok, tc.want.name)
		}
	}

	// The full identifier is not this strategy's job; bad ids miss.
	for _, id := range []string{"book", "models/nothing", "../book", ""} {
		if got, ok := s.TryResolve(id, conf); ok || got != nil {
			t.Fatalf("TryResolve(%q) = (%v,%v), want (nil,false)", id, got, ok)
		}
	}
}
