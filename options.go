package spanarena

import "go.uber.org/zap"

// DefaultChunkSize is the default number of slots per container chunk.
const DefaultChunkSize = 256

// config holds the settings shared by a Container and everything layered
// over it. Values are copied at construction time.
type config struct {
	name        string
	chunkSize   int
	maxSlots    int
	debugChecks bool
	logger      *zap.Logger
}

// Option configures a Container.
type Option func(*config)

func resolveConfig(opts ...Option) *config {
	cfg := &config{
		chunkSize:   DefaultChunkSize,
		debugChecks: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.chunkSize <= 0 {
		cfg.chunkSize = DefaultChunkSize
	}
	if cfg.maxSlots < 0 {
		cfg.maxSlots = 0
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.name != "" {
		cfg.logger = cfg.logger.With(zap.String("container", cfg.name))
	}
	return cfg
}

// WithName labels the container in logs and exported metrics.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithChunkSize sets how many slots are added each time the container grows.
// Values <= 0 select DefaultChunkSize.
func WithChunkSize(slots int) Option {
	return func(cfg *config) {
		cfg.chunkSize = slots
	}
}

// WithMaxSlots caps the number of addressable slots. Alloc reports
// ErrExhausted once every slot is live. Zero means limited only by the
// 32-bit slot index.
func WithMaxSlots(slots int) Option {
	return func(cfg *config) {
		cfg.maxSlots = slots
	}
}

// WithDebugChecks controls what happens on a contract violation (stale
// location, double put). When enabled (the default) the violation panics;
// when disabled it is logged and the operation is skipped.
func WithDebugChecks(enabled bool) Option {
	return func(cfg *config) {
		cfg.debugChecks = enabled
	}
}

// WithLogger sets the logger used for growth, frees and contract violations.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
