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

package naming_test

import (
	"testing"

	"dirpx.dev/model/utils/naming"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Book", "Book"},
		{"  Book  ", "Book"},
		{"Library.Book", "Library.Book"},
		{"./models/book", "models/book"},
		{"/models/book", "models/book"},
		{"models//sub/../book", "models/book"},
		{`models\sub\book`, "models/sub/book"},
	}
	for _, tc := range cases {
		got, err := naming.Normalize(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("Normalize(%q): got (%q,%v), want (%q,nil)", tc.in, got, err, tc.want)
		}
	}
}

func TestNormalize_Errors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", naming.ErrEmptyName},
		{"   ", naming.ErrEmptyName},
		{"/", naming.ErrEmptyName},
		{".", naming.ErrEmptyName},
		{"..", naming.ErrEscapesRoot},
		{"../book", naming.ErrEscapesRoot},
		{"a/../../book", naming.ErrEscapesRoot},
		{"Book[]", naming.ErrArrayMarker},
	}
	for _, tc := range cases {
		if got, err := naming.Normalize(tc.in); err != tc.want {
			t.Fatalf("Normalize(%q): got (%q,%v), want ('',%v)", tc.in, got, err, tc.want)
		}
	}
}

func TestSuffixes(t *testing.T) {
	got := naming.Suffixes("a/b/c")
	want := []string{"a/b/c", "b/c", "c"}
	if len(got) != len(want) {
		t.Fatalf("Suffixes len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Suffixes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := naming.Suffixes("Book"); len(got) != 1 || got[0] != "Book" {
		t.Fatalf("Suffixes(Book) = %v, want [Book]", got)
	}
}

func TestBase(t *testing.T) {
	if got := naming.Base("models/sub/book"); got != "book" {
		t.Fatalf("Base: got %q, want book", got)
	}
	if got := naming.Base("Book"); got != "Book" {
		t.Fatalf("Base: got %q, want Book", got)
	}
}

func TestFold(t *testing.T) {
	keys := []string{"sub-folder/class-a", "SubFolder/ClassA", "sub_folder.class_a", "Sub Folder ClassA"}
	for _, k := range keys {
		if got := naming.Fold(k); got != "subfolderclassa" {
			t.Fatalf("Fold(%q) = %q, want subfolderclassa", k, got)
		}
	}
	if naming.Fold("ClassA") == naming.Fold("ClassB") {
		t.Fatalf("Fold must keep distinct names distinct")
	}
}
