package analyzer

import (
	"github.com/viant/hotedit/analyzer/capability"
	"go.uber.org/zap"
)

type Option func(*Analyzer)

// WithLogger sets a structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCapabilities sets the edit capabilities of the target runtime
func WithCapabilities(capabilities capability.Set) Option {
	return func(a *Analyzer) {
		a.capabilities = capabilities
	}
}

// WithStrictInvariants makes match invariant violations fail the run instead of being reported
// as internal error diagnostics
func WithStrictInvariants(strict bool) Option {
	return func(a *Analyzer) {
		a.strict = strict
	}
}

// WithConcurrency limits the number of documents analyzed in parallel
func WithConcurrency(limit int) Option {
	return func(a *Analyzer) {
		if limit > 0 {
			a.concurrency = limit
		}
	}
}
