// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU engine for axle matrices.
//
// # Overview
//
// This package implements an engine with:
//   - Pure Go implementation (no CGO) over gonum BLAS
//   - Float32 and Float64 support
//   - Deferred evaluation, computed once per node
//   - Faster matrix products for diagonal, triangular and symmetric hints
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/axle/backend/cpu"
//	    "github.com/born-ml/axle/matrix"
//	)
//
//	func main() {
//	    engine := cpu.New(cpu.WithWorkers(4))
//	    a := matrix.Identity[float64](3, matrix.WithEngine(engine))
//	    b := a.Scale(2)
//	}
//
// # Logging
//
// Matrices built with matrix.AttributeEnableLogging, and every matrix
// derived from them, log one zerolog event per evaluated operation.
package cpu
