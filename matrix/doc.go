// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra core used to solve
// inventory systems.
//
// What & Why:
//
//	Dense is a row-major float64 matrix stored in one flat slice for cache
//	friendliness. Technosphere systems are square and modest in size, so a
//	dense LU factorization with partial pivoting is enough to compute supply
//	vectors (A·s = d) and unit scores (Aᵀ·u = Bᵀ·c).
//
// Complexity:
//
//	At, Set, Add:        O(1) with bounds checking.
//	MatVec, VecMat:      O(r·c).
//	Factorize:           O(n³) time, O(n²) memory.
//	LU.Solve / SolveT:   O(n²) per right-hand side.
//
// Errors (sentinel):
//
//	ErrInvalidDimensions  non-positive shape.
//	ErrIndexOutOfBounds   row or column outside the matrix.
//	ErrDimensionMismatch  operand lengths disagree.
//	ErrNonSquare          factorization of a non-square matrix.
//	ErrSingular           zero pivot after row exchanges.
//	ErrNaNInf             NaN or ±Inf written into a matrix.
package matrix
