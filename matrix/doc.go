// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides typed dense matrices over a deferred
// linear-algebra engine.
//
// # Overview
//
// A Matrix[T] is an immutable rows×cols matrix of float32 or float64. This
// package provides:
//   - Five constructors (New, FromRows, Zeros, Identity, Diagonal)
//   - Views: transpose, submatrix, row, column and diagonal vectors
//   - Algebra: scale, sum, difference, elementwise, inner, outer and matrix products
//   - Norms, equality and formatting
//
// # Basic Usage
//
//	import "github.com/born-ml/axle/matrix"
//
//	func main() {
//	    a := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
//	    b := matrix.Identity[float64](2)
//
//	    c := matrix.Add(a, b).MatrixProduct(a.Transpose())
//	    elements, status := c.Elements()
//	}
//
// # Deferred Evaluation
//
// Building a matrix records an operation in the engine without computing
// it. Elements, Norm, Status, String and Equal force evaluation of the
// matrix and everything it depends on. Errors of recorded operations, such
// as a submatrix outside its source, surface there as a Status:
//
//	sub := a.Submatrix(matrix.Range{Start: 5, End: 10}, matrix.Range{Start: 0, End: 2})
//	_, status := sub.Elements() // SliceOutOfBoundsError
//
// Caller-contract violations (empty or ragged input, element count not
// matching the shape) panic at the call that introduced them.
//
// # Hints
//
// WithHint tells the engine about structure it may exploit, for example
// HintShapeLowerTriangular. Hints are not verified; a wrong hint produces
// wrong results.
//
// # Engines
//
// Matrices are evaluated by the shared CPU engine unless WithEngine selects
// another one. See package backend/cpu.
package matrix
