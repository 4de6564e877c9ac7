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

package builder_test

import (
	"bytes"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	apis "dirpx.dev/model/apis"
	"dirpx.dev/model/builder"
	"dirpx.dev/model/config"
	"dirpx.dev/model/registry"
)

// def is a minimal definition for builder tests.
type def struct{ name string }

func (d *def) TypeName() string { return d.name }

// defaultCfg returns a sane configuration for tests.
func defaultCfg() apis.Config {
	return config.DefaultConfig()
}

// TestBuildRegistry_Basic asserts that BuildRegistry returns a non-nil,
// working Registry that supports Register/Lookup/Entries/Count.
func TestBuildRegistry_Basic(t *testing.T) {
	b := builder.New()

	// prev may be nil; this must still produce a valid registry.
	reg := b.BuildRegistry(defaultCfg(), nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}

	d := &def{name: "Book"}
	if err := reg.Register("Book", d); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if got, ok := reg.Lookup("Book"); !ok || got != d {
		t.Fatalf("Lookup mismatch: ok=%v got=%v want=%v", ok, got, d)
	}

	if c := reg.Count(); c < 1 {
		t.Fatalf("Count too small: %d", c)
	}

	snap := reg.Entries()
	if len(snap) < 1 {
		t.Fatalf("Entries returned empty snapshot")
	}
}

// TestBuildRegistry_MigratesEntries verifies that a rebuilt registry keeps
// the entries of the previous one and is a distinct instance.
func TestBuildRegistry_MigratesEntries(t *testing.T) {
	b := builder.New()
	prev := b.BuildRegistry(defaultCfg(), nil)
	book, author := &def{name: "Book"}, &def{name: "Author"}
	_ = prev.Register("Book", book)
	_ = prev.Register("people/Author", author)

	cfg := config.NewConfig(config.WithIgnoreDuplicate(true))
	next := b.BuildRegistry(cfg, prev)
	if next == prev {
		t.Fatal("BuildRegistry reused the previous registry")
	}
	if next.Count() != 2 {
		t.Fatalf("migrated Count() = %d, want 2", next.Count())
	}
	if got, ok := next.Lookup("people/Author"); !ok || got != author {
		t.Fatalf("migrated Lookup(people/Author): got (%v,%v)", got, ok)
	}

	// The new registry carries the new collision policy.
	if err := next.Register("Book", &def{name: "Other"}); err != nil {
		t.Fatalf("IgnoreDuplicate registry rejected overwrite: %v", err)
	}
	if err := prev.Register("Book", &def{name: "Other"}); !errors.Is(err, registry.ErrAlreadyRegistered) {
		t.Fatalf("previous registry: want ErrAlreadyRegistered, got %v", err)
	}
}

// TestBuildResolver_Order_RegistryThenPathThenFold verifies resolution priority:
// 1. The identifier as registered.
// 2. Otherwise, the longest registered path suffix.
// 3. Otherwise, a case/separator-insensitive match.
func TestBuildResolver_Order_RegistryThenPathThenFold(t *testing.T) {
	b := builder.New()
	cfg := defaultCfg()

	reg := b.BuildRegistry(cfg, nil)
	exact, suffix, folded := &def{name: "exact"}, &def{name: "suffix"}, &def{name: "folded"}
	_ = reg.Register("models/book", exact)
	_ = reg.Register("book", suffix)
	_ = reg.Register("store-keeper", folded)

	res := b.BuildResolver(cfg, reg, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	cases := []struct {
		id   string
		want *def
	}{
		{"models/book", exact},
		{"shop/book", suffix},
		{"StoreKeeper", folded},
	}
	for _, tc := range cases {
		got, err := res.Resolve(tc.id, cfg)
		if err != nil || got != tc.want {
			t.Fatalf("Resolve(%q): got (%v,%v), want (%s,nil)", tc.id, got, err, tc.want.name)
		}
	}

	if _, err := res.Resolve("Ghost", cfg); !errors.Is(err, apis.ErrUnresolvable) {
		t.Fatalf("Resolve(Ghost): want ErrUnresolvable, got %v", err)
	}
}

// TestBuildResolver_FoldDisabled checks that FoldNames=false leaves the fold
// strategy out of the chain.
func TestBuildResolver_FoldDisabled(t *testing.T) {
	b := builder.New()
	cfg := config.NewConfig(config.WithFoldNames(false))
	reg := b.BuildRegistry(cfg, nil)
	_ = reg.Register("store-keeper", &def{name: "StoreKeeper"})

	if _, err := b.BuildResolver(cfg, reg, nil).Resolve("StoreKeeper", cfg); !errors.Is(err, apis.ErrUnresolvable) {
		t.Fatalf("FoldNames=false: want ErrUnresolvable, got %v", err)
	}
}

// TestBuildResolver_WithExternalRegistry asserts that BuildResolver will
// accept *any* apis.Registry implementation (not only the one created by
// this builder), and still resolve names from it.
func TestBuildResolver_WithExternalRegistry(t *testing.T) {
	// Create a registry directly using the package's public New().
	r := registry.New(config.DefaultConfig())

	u := &def{name: "User"}
	if err := r.Register("u", u); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	res := builder.New().BuildResolver(defaultCfg(), r, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	got, err := res.Resolve("u", defaultCfg())
	if err != nil || got != u {
		t.Fatalf("resolver did not use registry mapping: got (%v,%v) want %v", got, err, u)
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel to ensure
// it is safe to call Resolve concurrently after being built.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := defaultCfg()

	reg := b.BuildRegistry(cfg, nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}

	// Pre-register some names so every strategy gets exercised under contention.
	_ = reg.Register("book", &def{name: "Book"})
	_ = reg.Register("store-keeper", &def{name: "StoreKeeper"})

	res := b.BuildResolver(cfg, reg, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	ids := []string{"book", "models/book", "StoreKeeper", "ghost"}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				_, _ = res.Resolve(ids[(i+id)%len(ids)], cfg)
			}
		}(w)
	}

	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()

// fixedEntries is a registry stub whose snapshot may hold names a real
// registry would refuse.
type fixedEntries []apis.Entry

func (f fixedEntries) Register(string, apis.Definition) error { return nil }
func (f fixedEntries) Lookup(string) (apis.Definition, bool)   { return nil, false }
func (f fixedEntries) Entries() []apis.Entry                   { return f }
func (f fixedEntries) Count() int                              { return len(f) }
func (f fixedEntries) Reset()                                  {}

// TestBuildRegistry_LogsUnmigratedEntries verifies that an entry the new
// registry rejects is skipped with a warning while the others migrate.
func TestBuildRegistry_LogsUnmigratedEntries(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewConfig(config.WithLogger(zerolog.New(&buf)))
	book := &def{name: "Book"}
	prev := fixedEntries{{Name: "", Definition: book}, {Name: "Book", Definition: book}}

	reg := builder.New().BuildRegistry(cfg, prev)
	if got, ok := reg.Lookup("Book"); !ok || got != book {
		t.Fatalf("Lookup(Book): got (%v,%v), want (Book,true)", got, ok)
	}
	if n := reg.Count(); n != 1 {
		t.Fatalf("Count: got %d, want 1", n)
	}
	if !strings.Contains(buf.String(), `"message":"definition not migrated"`) {
		t.Fatalf("expected a migration warning, log: %q", buf.String())
	}
}
