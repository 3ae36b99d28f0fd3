package toolkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrMissing indicates a required SRA Toolkit executable is absent.
var ErrMissing = errors.New("sra toolkit missing")

const (
	fetchBinary  = "prefetch"
	decodeBinary = "fasterq-dump"
)

// Paths holds the resolved locations of the required toolkit executables.
type Paths struct {
	Root     string
	Prefetch string
	Dump     string
}

// Locate resolves and verifies the toolkit executables under <root>/bin. Both
// must exist and be executable; otherwise construction of anything depending
// on the toolkit fails fast.
func Locate(root string) (Paths, error) {
	if root == "" {
		return Paths{}, fmt.Errorf("%w: toolkit directory not configured", ErrMissing)
	}
	binDir := filepath.Join(root, "bin")
	paths := Paths{
		Root:     root,
		Prefetch: filepath.Join(binDir, executableName(fetchBinary)),
		Dump:     filepath.Join(binDir, executableName(decodeBinary)),
	}
	for _, binary := range []string{paths.Prefetch, paths.Dump} {
		if err := checkExecutable(binary); err != nil {
			return Paths{}, err
		}
	}
	return paths, nil
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s not found", ErrMissing, path)
		}
		return fmt.Errorf("%w: stat %s: %v", ErrMissing, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrMissing, path)
	}
	if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable", ErrMissing, path)
	}
	return nil
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
