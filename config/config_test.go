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

package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"dirpx.dev/model/apis"
	"dirpx.dev/model/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.DefaultMode != config.DefaultMode {
		t.Fatalf("DefaultMode = %q, want %q", got.DefaultMode, config.DefaultMode)
	}
	if got.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want %d", got.MaxDepth, config.DefaultMaxDepth)
	}
	if got.IgnoreDuplicate != config.DefaultIgnoreDuplicate {
		t.Fatalf("IgnoreDuplicate = %v, want %v", got.IgnoreDuplicate, config.DefaultIgnoreDuplicate)
	}
	if got.SortInPlace != config.DefaultSortInPlace {
		t.Fatalf("SortInPlace = %v, want %v", got.SortInPlace, config.DefaultSortInPlace)
	}
	if got.ReservedPrefix != config.DefaultReservedPrefix {
		t.Fatalf("ReservedPrefix = %q, want %q", got.ReservedPrefix, config.DefaultReservedPrefix)
	}
	if got.FoldNames != config.DefaultFoldNames {
		t.Fatalf("FoldNames = %v, want %v", got.FoldNames, config.DefaultFoldNames)
	}
	if got.Logger != nil {
		t.Fatalf("Logger = %v, want nil", got.Logger)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithDefaultMode(t *testing.T) {
	c := config.NewConfig(config.WithDefaultMode(apis.ModeStrict))
	if c.DefaultMode != apis.ModeStrict {
		t.Fatalf("DefaultMode = %q, want strict", c.DefaultMode)
	}

	c2 := config.NewConfig(config.WithDefaultMode("loose"))
	if c2.DefaultMode != config.DefaultMode {
		t.Fatalf("DefaultMode = %q, want default for unknown mode", c2.DefaultMode)
	}
}

func TestWithMaxDepth(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(3))
	if c.MaxDepth != 3 {
		t.Fatalf("MaxDepth = %d, want 3", c.MaxDepth)
	}

	for _, v := range []int{0, -1} {
		c := config.NewConfig(config.WithMaxDepth(v))
		if c.MaxDepth != config.DefaultMaxDepth {
			t.Fatalf("WithMaxDepth(%d): MaxDepth = %d, want default %d", v, c.MaxDepth, config.DefaultMaxDepth)
		}
	}
}

func TestWithReservedPrefix_EmptyResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithReservedPrefix("$"))
	if c.ReservedPrefix != "$" {
		t.Fatalf("ReservedPrefix = %q, want $", c.ReservedPrefix)
	}
	c2 := config.NewConfig(config.WithReservedPrefix(""))
	if c2.ReservedPrefix != config.DefaultReservedPrefix {
		t.Fatalf("ReservedPrefix = %q, want default", c2.ReservedPrefix)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithIgnoreDuplicate(false),
		config.WithIgnoreDuplicate(true),
		config.WithMaxDepth(2),
		config.WithMaxDepth(5),
		config.WithSortInPlace(true),
		config.WithSortInPlace(false),
		config.WithFoldNames(false),
		config.WithFoldNames(true),
	)

	if !c.IgnoreDuplicate {
		t.Errorf("IgnoreDuplicate = %v, want true (last option wins)", c.IgnoreDuplicate)
	}
	if c.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5 (last option wins)", c.MaxDepth)
	}
	if c.SortInPlace {
		t.Errorf("SortInPlace = %v, want false (last option wins)", c.SortInPlace)
	}
	if !c.FoldNames {
		t.Errorf("FoldNames = %v, want true (last option wins)", c.FoldNames)
	}
}

func TestConfig_LogWithoutLoggerIsDisabled(t *testing.T) {
	c := config.NewConfig()
	if lvl := c.Log().GetLevel(); lvl != zerolog.Disabled {
		t.Fatalf("Log().GetLevel() = %v, want disabled", lvl)
	}
}

func TestParse_Document(t *testing.T) {
	doc := []byte(`
default_mode: strict
max_depth: 4
ignore_duplicate: true
sort_in_place: true
reserved_prefix: "$"
fold_names: false
log_level: debug
`)
	var out bytes.Buffer
	c, err := config.Parse(doc, &out)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if c.DefaultMode != apis.ModeStrict || c.MaxDepth != 4 || !c.IgnoreDuplicate ||
		!c.SortInPlace || c.ReservedPrefix != "$" || c.FoldNames {
		t.Fatalf("Parse: got %+v", c)
	}
	if c.Logger == nil {
		t.Fatal("Parse: expected a logger when a writer is given")
	}
	log := c.Log()
	log.Debug().Msg("hello")
	if !strings.Contains(out.String(), `"message":"hello"`) {
		t.Fatalf("debug event not written: %q", out.String())
	}
}

func TestParse_EmptyDocumentKeepsDefaults(t *testing.T) {
	c, err := config.Parse(nil, nil)
	if err != nil {
		t.Fatalf("Parse(nil): unexpected error: %v", err)
	}
	if c != config.DefaultConfig() {
		t.Fatalf("Parse(nil) = %+v, want default", c)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := config.Parse([]byte("default_mode: loose\n"), nil); !errors.Is(err, config.ErrInvalidMode) {
		t.Fatalf("unknown mode: want ErrInvalidMode, got %v", err)
	}
	if _, err := config.Parse([]byte("unknown_key: 1\n"), nil); err == nil {
		t.Fatal("unknown key: expected error")
	}
	if _, err := config.Parse([]byte("log_level: loud\n"), &bytes.Buffer{}); err == nil {
		t.Fatal("bad log level: expected error")
	}
	if _, err := config.Parse([]byte("log_level: loud\n"), nil); err == nil {
		t.Fatal("bad log level without writer: expected error")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte("max_depth: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if c.MaxDepth != 7 {
		t.Fatalf("MaxDepth = %d, want 7", c.MaxDepth)
	}
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatal("Load(missing): expected error")
	}
}
