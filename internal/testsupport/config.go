package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"qap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Logging is quiet JSON so test output is not flooded.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkingDir = filepath.Join(base, "work")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Storage.Endpoint = "127.0.0.1:9000"
	cfgVal.Storage.UseSSL = false
	cfgVal.Logging.Format = "json"
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOutputPrefix sets the upload destination for pipeline output.
func WithOutputPrefix(prefix string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.OutputPrefix = prefix
	}
}

// WithUploadConcurrency overrides the parallel upload limit.
func WithUploadConcurrency(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.UploadConcurrency = n
	}
}

// WithCredsFile writes contents to a credentials file under the base dir and
// points the read credentials at it.
func WithCredsFile(name, contents string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, name)
		if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
			b.t.Fatalf("write creds %s: %v", name, err)
		}
		b.cfg.Storage.CredsPath = path
	}
}

// WithCreatedDirs creates the working, output, and log directories.
func WithCreatedDirs() ConfigOption {
	return func(b *configBuilder) {
		if err := b.cfg.EnsureDirectories(); err != nil {
			b.t.Fatalf("ensure directories: %v", err)
		}
		if err := os.MkdirAll(b.cfg.Paths.OutputDir, 0o755); err != nil {
			b.t.Fatalf("mkdir output: %v", err)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkingDir)
}
