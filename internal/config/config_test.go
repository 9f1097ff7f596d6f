package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/restrict-lang/rlc/internal/config"
)

func TestHasSourceExt(t *testing.T) {
	if !config.HasSourceExt("main.rl") {
		t.Fatalf("expected main.rl to be recognized as a source file")
	}
	if config.HasSourceExt("main.go") {
		t.Fatalf("did not expect main.go to be recognized as a source file")
	}
}

func TestTrimSourceExt(t *testing.T) {
	if got := config.TrimSourceExt("main.rl"); got != "main" {
		t.Fatalf("expected %q, got %q", "main", got)
	}
	if got := config.TrimSourceExt("main"); got != "main" {
		t.Fatalf("expected TrimSourceExt to be a no-op without the extension, got %q", got)
	}
}

func TestLoadProjectMissingFileDefaultsToWASI(t *testing.T) {
	proj, err := config.LoadProject(filepath.Join(t.TempDir(), "rlc.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Profile != config.ProfileWASI {
		t.Fatalf("expected default profile %q, got %q", config.ProfileWASI, proj.Profile)
	}
}

func TestLoadProjectParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rlc.yaml")
	if err := os.WriteFile(path, []byte("profile: web\nout: build/out.wat\n"), 0o644); err != nil {
		t.Fatalf("unexpected error writing fixture: %v", err)
	}
	proj, err := config.LoadProject(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Profile != config.ProfileWeb {
		t.Fatalf("expected profile %q, got %q", config.ProfileWeb, proj.Profile)
	}
	if proj.Out != "build/out.wat" {
		t.Fatalf("expected out %q, got %q", "build/out.wat", proj.Out)
	}
}

func TestLoadProjectUnsetProfileDefaultsToWASI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rlc.yaml")
	if err := os.WriteFile(path, []byte("out: out.wat\n"), 0o644); err != nil {
		t.Fatalf("unexpected error writing fixture: %v", err)
	}
	proj, err := config.LoadProject(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Profile != config.ProfileWASI {
		t.Fatalf("expected profile to default to %q when unset, got %q", config.ProfileWASI, proj.Profile)
	}
}
