package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTree creates each slash-separated relative path under root as a small
// file and returns the absolute paths in the same order.
func WriteTree(t testing.TB, root string, rels ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		WriteFile(t, path, 16)
		paths = append(paths, path)
	}
	return paths
}

// MemTree returns an in-memory filesystem holding each slash-separated path
// as a small file.
func MemTree(t testing.TB, paths ...string) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	for _, p := range paths {
		if err := util.WriteFile(fs, p, []byte("nifti"), 0o644); err != nil {
			t.Fatalf("memfs write %s: %v", p, err)
		}
	}
	return fs
}
