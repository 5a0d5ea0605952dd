package finfo

import (
	"go.uber.org/zap"
)

// Option represents a configuration option
type Option func(*Options)

// Options contains all possible options for a Describer
type Options struct {
	// Checksum is the algorithm used by the digest operation
	Checksum ChecksumAlgorithm

	// ReadBufferSize is the chunk size used when streaming file content
	ReadBufferSize int

	// Logger receives a debug entry for every isolated operation failure
	Logger *zap.Logger
}

func defaultOptions() Options {
	return Options{
		Checksum:       ChecksumSHA256,
		ReadBufferSize: DefaultReadBufferSize,
		Logger:         zap.NewNop(),
	}
}

// WithChecksum sets the digest algorithm
func WithChecksum(algorithm ChecksumAlgorithm) Option {
	return func(o *Options) {
		o.Checksum = algorithm
	}
}

// WithReadBufferSize sets the chunk size used to stream file content.
// Non-positive sizes are ignored.
func WithReadBufferSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.ReadBufferSize = size
		}
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.Logger = logger
	}
}
