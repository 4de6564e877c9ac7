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

	"dirpx.dev/model/config"
	"dirpx.dev/model/strategy"
)

func TestFoldStrategy(t *testing.T) {
	conf := cfg()
	classA := &D{name: "ClassA"}
	reg := newRegistry(t, conf, map[string]*D{
		"sub-folder-a/class-a": classA,
		"StoreKeeper":          {name: "StoreKeeper"},
	})
	s := strategy.NewFoldStrategy(reg)

	for _, id := range []string{"SubFolderA/ClassA", "sub_folder_a.class_a", "ClassA", "other/CLASS-A"} {
		got, ok := s.TryResolve(id, conf)
		if !ok || got != classA {
			t.Fatalf("TryResolve(%q) = (%v,%v), want (ClassA,true)", id, got, ok)
		}
	}
	if got, ok := s.TryResolve("store-keeper", conf); !ok || got.TypeName() != "StoreKeeper" {
		t.Fatalf("TryResolve(store-keeper) = (%v,%v), want (StoreKeeper,true)", got, ok)
	}
	if got, ok := s.TryResolve("ClassB", conf); ok || got != nil {
		t.Fatalf("TryResolve(ClassB) = (%v,%v), want (nil,false)", got, ok)
	}
}

func TestFoldStrategy_Ambiguous(t *testing.T) {
	conf := cfg()
	reg := newRegistry(t, conf, map[string]*D{
		"shop/book":    {name: "ShopBook"},
		"library/Book": {name: "LibraryBook"},
	})
	s := strategy.NewFoldStrategy(reg)
	if got, ok := s.TryResolve("BOOK", conf); ok || got != nil {
		t.Fatalf("ambiguous: got (%v,%v), want (nil,false)", got, ok)
	}
}

func TestFoldStrategy_Disabled(t *testing.T) {
	conf := cfg(config.WithFoldNames(false))
	reg := newRegistry(t, conf, map[string]*D{"StoreKeeper": {name: "StoreKeeper"}})
	s := strategy.NewFoldStrategy(reg)
	if got, ok := s.TryResolve("store-keeper", conf); ok || got != nil {
		t.Fatalf("FoldNames=false: got (%v,%v), want (nil,false)", got, ok)
	}
}
