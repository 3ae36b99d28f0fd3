package testsupport

import (
	"path/filepath"
	"testing"

	"seqfetch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "downloads")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ToolkitDir = filepath.Join(base, "sratoolkit")
	cfgVal.Paths.HistoryDB = filepath.Join(base, "history.db")
	cfgVal.Download.MaxAttempts = 1
	cfgVal.Download.RetryDelaySeconds = 1
	cfgVal.Resolver.RequestDelayMS = 1

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

// WithWorkers overrides the worker pool size on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Download.Workers = workers
	}
}

// WithResolverURL points the resolver at a test server.
func WithResolverURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Resolver.BaseURL = url
	}
}

// WithStubbedToolkit writes stub prefetch and fasterq-dump executables under
// the config's toolkit directory.
func WithStubbedToolkit() ConfigOption {
	return func(b *configBuilder) {
		StubToolkit(b.t, b.cfg.Paths.ToolkitDir)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
