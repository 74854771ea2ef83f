package testsupport

import (
	"path/filepath"
	"testing"

	"srtwrap/internal/config"
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
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

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

// WithMaxWidth overrides the wrap width on the test config.
func WithMaxWidth(width int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Format.MaxWidth = width
	}
}

// WithMarkSplits enables split markers with the given suffix.
func WithMarkSplits(suffix string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Format.MarkSplits = true
		b.cfg.Format.MarkSuffix = suffix
	}
}

// WithStripSync drops counter and timecode lines from output.
func WithStripSync() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Format.StripSync = true
	}
}

// WithAtomicWrites switches the write mode to temp file plus rename.
func WithAtomicWrites() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.WriteMode = config.WriteModeAtomic
	}
}

// WithoutHistory disables the SQLite ledger.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.History = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
