package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaultCorrections(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine("")
	if err != nil {
		t.Fatalf("new engine failed: %v", err)
	}

	got := engine.Apply("ask clod about the .clod settings")
	want := "ask claude about the .claude settings"
	if got != want {
		t.Fatalf("unexpected correction: %q", got)
	}
}

func TestApplyFileCorrections(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vocab.rules")
	contents := "# spoken commands\nresearch code base => /research_codebase\ncreate plan => /create_plan\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	engine, err := NewEngine(path)
	if err != nil {
		t.Fatalf("new engine failed: %v", err)
	}

	got := engine.Apply("research code base then create plan")
	want := "/research_codebase then /create_plan"
	if got != want {
		t.Fatalf("unexpected correction: %q", got)
	}
}

func TestNewEngineMissingFileIsTolerated(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine(filepath.Join(t.TempDir(), "missing.rules")); err != nil {
		t.Fatalf("expected missing file tolerated, got %v", err)
	}
}

func TestNewEngineRejectsMalformedLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.rules")
	if err := os.WriteFile(path, []byte("not a correction\n"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := NewEngine(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNewEngineRejectsEmptySource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.rules")
	if err := os.WriteFile(path, []byte(" => something\n"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := NewEngine(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
