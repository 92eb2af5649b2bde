// Package integration provides CLI integration tests for satchel.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// satchelBin is the path to the built satchel binary.
	satchelBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv provides an isolated test environment with its own config and data
// directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build satchel: %v", buildErr)
	}
	if satchelBin == "" {
		t.Fatal("satchel binary not built (satchelBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "log_level: warn\ndata_dir: " + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// CmdResult holds the result of a satchel command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunSatchel executes the satchel CLI with the given arguments.
func (e *TestEnv) RunSatchel(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(satchelBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run satchel: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunSatchel executes the satchel CLI and fails the test on non-zero exit.
func (e *TestEnv) MustRunSatchel(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunSatchel(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("satchel %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// User mirrors the CLI's JSON output for a user.
type User struct {
	ID       string `json:"ID"`
	Username string `json:"Username"`
	Name     string `json:"Name"`
	Email    string `json:"Email"`
	Theme    string `json:"Theme"`
}

// Task mirrors the CLI's JSON output for a task.
type Task struct {
	ID         string `json:"ID"`
	Title      string `json:"Title"`
	Time       string `json:"Time"`
	Priority   string `json:"Priority"`
	Date       string `json:"Date"`
	Completed  bool   `json:"Completed"`
	SyncStatus string `json:"SyncStatus"`
}

// Note mirrors the CLI's JSON output for a note.
type Note struct {
	ID      string `json:"ID"`
	Title   string `json:"Title"`
	Content string `json:"Content"`
}

// Media mirrors the CLI's JSON output for a gallery item.
type Media struct {
	ID     string `json:"ID"`
	Name   string `json:"Name"`
	URL    string `json:"URL"`
	Type   string `json:"Type"`
	Source string `json:"Source"`
}

// SyncResult mirrors the CLI's JSON output for a sync pass.
type SyncResult struct {
	Success     bool   `json:"success"`
	SyncedItems struct {
		Tasks int `json:"tasks"`
		Media int `json:"media"`
		Notes int `json:"notes"`
	} `json:"syncedItems"`
	Token string `json:"syncToken"`
}
