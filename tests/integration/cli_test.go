// CLI smoke tests: build, version, init.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "satchel-test-*")
	if err != nil {
		buildErr = err
		os.Exit(1)
	}
	satchelBin = filepath.Join(tmpDir, "satchel")

	cmd := exec.Command("go", "build", "-o", satchelBin, "./cmd/satchel")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestVersionCommand(t *testing.T) {
	env := NewTestEnv(t)
	result := env.MustRunSatchel("version")

	if !strings.Contains(result.Stdout, "satchel v") {
		t.Errorf("version output = %q, want it to contain %q", result.Stdout, "satchel v")
	}
}

func TestInitCreatesDataDir(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")

	if _, err := os.Stat(env.DataDir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}

	// The persisted database image lives in the data directory.
	if _, err := os.Stat(filepath.Join(env.DataDir, "origin_app_db")); err != nil {
		t.Errorf("database image not persisted: %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")
	env.MustRunSatchel("init")
}

func TestCommandsRequireLogin(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")

	result := env.RunSatchel("task", "list", "--date", "2026-09-01")
	if result.ExitCode == 0 {
		t.Error("expected non-zero exit without a session")
	}
	if !strings.Contains(result.Stderr, "not logged in") {
		t.Errorf("stderr = %q, want a login hint", result.Stderr)
	}
}
