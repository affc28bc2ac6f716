package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runInit executes `logoscout init` with the given extra arguments.
func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"init"}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

func TestInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates configuration file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".logoscout")
		out, err := runInit(t, "-o", path)
		if err != nil {
			t.Fatalf("init failed: %v", err)
		}

		if !strings.Contains(out, "Created configuration file") {
			t.Errorf("output missing confirmation:\n%s", out)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read generated file: %v", err)
		}
		for _, want := range []string{"userAgents", "headers", "domains", "skip"} {
			if !strings.Contains(string(content), want) {
				t.Errorf("template missing %q section", want)
			}
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".logoscout")
		if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := runInit(t, "-o", path); err == nil {
			t.Fatal("expected error for existing file")
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "existing" {
			t.Error("existing file was modified")
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".logoscout")
		if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := runInit(t, "-o", path, "-f"); err != nil {
			t.Fatalf("forced init failed: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), "logoscout configuration file") {
			t.Error("file was not overwritten with the template")
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "deep", "config.yaml")
		if _, err := runInit(t, "-o", path); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("generated file missing: %v", err)
		}
	})
}
