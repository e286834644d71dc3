package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.TabWidth)
	}
	if cfg.UndoDebounce() != 500*time.Millisecond {
		t.Errorf("UndoDebounce() = %v, want 500ms", cfg.UndoDebounce())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
tab_width = 2
undo_debounce_ms = 250
log_level = "debug"

[comments]
zig = "//"

[lsp]
rs = ["rust-analyzer"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2", cfg.TabWidth)
	}
	if cfg.UndoDebounce() != 250*time.Millisecond {
		t.Errorf("UndoDebounce() = %v, want 250ms", cfg.UndoDebounce())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if got := cfg.CommentToken("main.zig"); got != "//" {
		t.Errorf("CommentToken(.zig) = %q, want //", got)
	}
	if got := cfg.LSPCommand("lib.rs"); len(got) != 1 || got[0] != "rust-analyzer" {
		t.Errorf("LSPCommand(.rs) = %v", got)
	}
}

func TestLoadMalformedFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, "tab_width = [not toml")
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if cfg.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want default 4 after parse failure", cfg.TabWidth)
	}
}

func TestSanitizeRejectsBadValues(t *testing.T) {
	path := writeConfig(t, "tab_width = -3\nundo_debounce_ms = 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.TabWidth)
	}
	if cfg.UndoDebounceMS != 500 {
		t.Errorf("UndoDebounceMS = %d, want 500", cfg.UndoDebounceMS)
	}
}

func TestCommentToken(t *testing.T) {
	cfg := Default()
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "//"},
		{"script.py", "#"},
		{"init.lua", "--"},
		{"README", ""},
		{"file.unknown", ""},
	}
	for _, tt := range tests {
		if got := cfg.CommentToken(tt.path); got != tt.want {
			t.Errorf("CommentToken(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLSPCommandDefault(t *testing.T) {
	cfg := Default()
	if got := cfg.LSPCommand("main.go"); len(got) != 1 || got[0] != "gopls" {
		t.Errorf("LSPCommand(main.go) = %v", got)
	}
	if got := cfg.LSPCommand("notes.txt"); got != nil {
		t.Errorf("LSPCommand(notes.txt) = %v, want nil", got)
	}
}
