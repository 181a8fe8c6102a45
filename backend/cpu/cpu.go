// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/rs/zerolog"

	internalcpu "github.com/born-ml/axle/internal/backend/cpu"
	"github.com/born-ml/axle/internal/parallel"
	"github.com/born-ml/axle/matrix"
)

// Backend represents the CPU engine.
//
// The CPU engine records operations as a graph and evaluates them with
// gonum BLAS kernels when a matrix is materialized.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements matrix.Engine.
var _ matrix.Engine = (*Backend)(nil)

// Option configures a Backend.
type Option = internalcpu.Option

// WithLogger sets the logger used for matrices built with
// matrix.AttributeEnableLogging.
func WithLogger(logger zerolog.Logger) Option {
	return internalcpu.WithLogger(logger)
}

// WithWorkers sets the number of goroutines elementwise kernels fan out to.
// One disables fan-out.
func WithWorkers(n int) Option {
	cfg := parallel.DefaultConfig()
	cfg.NumWorkers = n
	cfg.Enabled = n > 1
	return internalcpu.WithParallel(cfg)
}

// New creates a new CPU engine.
//
// Example:
//
//	import (
//	    "github.com/born-ml/axle/backend/cpu"
//	    "github.com/born-ml/axle/matrix"
//	)
//
//	func main() {
//	    engine := cpu.New()
//	    m := matrix.Identity[float64](3, matrix.WithEngine(engine))
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}
