package inventory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"qap/internal/fileutil"
	"qap/internal/services"
)

const lockRetryDelay = 50 * time.Millisecond

// Encode writes m as a YAML mapping. Keys are emitted in sorted order, so
// identical manifests encode to identical bytes. An empty manifest encodes
// as {}.
func Encode(w io.Writer, m Manifest) error {
	if m == nil {
		m = NewManifest()
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}

// Decode parses a manifest document. An empty document yields an empty
// manifest.
func Decode(r io.Reader) (Manifest, error) {
	m := NewManifest()
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return NewManifest(), nil
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m == nil {
		m = NewManifest()
	}
	return m, nil
}

// WriteFile serializes m to path. The write holds an advisory lock on
// <path>.lock and replaces the file atomically.
func WriteFile(ctx context.Context, path string, m Manifest) error {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return err
	}
	if err := fileutil.EnsureParentDir(path); err != nil {
		return services.Wrap(services.ErrFilesystem, "inventory", "write manifest", path, err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return services.Wrap(services.ErrFilesystem, "inventory", "lock manifest", path, err)
	}
	if !locked {
		return services.Wrap(services.ErrFilesystem, "inventory", "lock manifest", path, nil)
	}
	defer func() { _ = lock.Unlock() }()

	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return services.Wrap(services.ErrFilesystem, "inventory", "write manifest", path, err)
	}
	return nil
}

// ReadFile loads a manifest previously written by WriteFile.
func ReadFile(path string) (Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "inventory", "read manifest", path, err)
		}
		return nil, services.Wrap(services.ErrFilesystem, "inventory", "read manifest", path, err)
	}
	defer file.Close()

	m, err := Decode(file)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "inventory", "read manifest", path, err)
	}
	return m, nil
}
