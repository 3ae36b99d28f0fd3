package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// StubToolkit writes no-op prefetch and fasterq-dump executables under
// dir/bin so toolkit discovery succeeds in tests.
func StubToolkit(t testing.TB, dir string) {
	t.Helper()

	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir toolkit bin dir: %v", err)
	}
	script := []byte("#!/bin/sh\nexit 0\n")
	for _, name := range []string{"prefetch", "fasterq-dump"} {
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
}

// StubToolkitScript writes prefetch and fasterq-dump executables running the
// given shell script body, for tests that need observable tool behavior.
func StubToolkitScript(t testing.TB, dir, body string) {
	t.Helper()

	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir toolkit bin dir: %v", err)
	}
	script := []byte("#!/bin/sh\n" + body + "\n")
	for _, name := range []string{"prefetch", "fasterq-dump"} {
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
}
