package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/config"
)

// TestLoad tests reading configuration files.
func TestLoad(t *testing.T) {
	cases := map[string]struct {
		content string
		check   func(t *testing.T, c *config.Config)
	}{
		"Empty": {
			content: "",
			check: func(t *testing.T, c *config.Config) {
				if c.REPL.Prompt != "(α) " {
					t.Errorf("wrong default prompt: %q", c.REPL.Prompt)
				}
				if c.SourceExt != alvin.DefaultSourceExt {
					t.Errorf("wrong default source extension: %q", c.SourceExt)
				}
			},
		},
		"Override": {
			content: "recursion_limit: 500\ncollect_every: 0\nrepl:\n  prompt: '> '\n",
			check: func(t *testing.T, c *config.Config) {
				if c.RecursionLimit != 500 {
					t.Errorf("wrong recursion limit: want 500, got %d", c.RecursionLimit)
				}
				if c.CollectEvery != 0 {
					t.Errorf("wrong collection interval: want 0, got %d", c.CollectEvery)
				}
				if c.REPL.Prompt != "> " {
					t.Errorf("wrong prompt: want %q, got %q", "> ", c.REPL.Prompt)
				}
				if c.REPL.Continue != "... " {
					t.Errorf("unset field lost its default: %q", c.REPL.Continue)
				}
			},
		},
		"Extensions": {
			content: "extensions:\n  store: ''\n  persist: true\n",
			check: func(t *testing.T, c *config.Config) {
				if !c.Extensions.Persist {
					t.Error("persist not set")
				}
				if _, ok := c.Store().(*alvin.MemStore); !ok {
					t.Errorf("empty store path did not give a memory store: %T", c.Store())
				}
			},
		},
		"SourceExt": {
			content: "source_ext: lsp\n",
			check: func(t *testing.T, c *config.Config) {
				if c.SourceExt != ".lsp" {
					t.Errorf("wrong source extension: want .lsp, got %q", c.SourceExt)
				}
			},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(c.content), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := config.Load(path)
			if err != nil {
				t.Fatal(err)
			}
			c.check(t, cfg)
		})
	}
}

// TestLoadErrors tests rejected configuration files.
func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"Unknown":  "nonsense: 1\n",
		"Type":     "recursion_limit: many\n",
		"Negative": "recursion_limit: -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := config.Load(path); err == nil {
				t.Errorf("no error loading %q", content)
			}
		})
	}
}

// TestLoadMissing tests that a missing file gives the defaults.
func TestLoadMissing(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nothing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CollectEvery != config.Default().CollectEvery {
		t.Errorf("missing file did not give defaults: %+v", cfg)
	}
}

// TestOptions tests that the configuration applies to an interpreter.
func TestOptions(t *testing.T) {
	cfg := config.Default()
	cfg.RecursionLimit = 50
	cfg.SourceExt = ".lsp"
	in := alvin.NewInterp(cfg.Options()...)
	if in.RecursionLimit != 50 {
		t.Errorf("wrong recursion limit: want 50, got %d", in.RecursionLimit)
	}
	if in.SourceExt != ".lsp" {
		t.Errorf("wrong source extension: want .lsp, got %q", in.SourceExt)
	}
}

// TestExpandHome tests home directory expansion.
func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory:", err)
	}
	cases := map[string]string{
		"~/x/y":    filepath.Join(home, "x/y"),
		"/abs/x":   "/abs/x",
		"rel/x":    "rel/x",
		"~other/x": "~other/x",
	}
	for in, want := range cases {
		if got := config.ExpandHome(in); got != want {
			t.Errorf("ExpandHome(%q): want %q, got %q", in, want, got)
		}
	}
}
