package autodiff

import (
	"errors"

	"github.com/KaiKogure/stan/internal/autodiff/ops"
)

// Common errors.
var (
	// ErrDimensionMismatch reports an operand with the wrong shape, such as a
	// non-square matrix passed to LogDeterminant.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrSingularMatrix is returned by the reverse pass when a node needs the
	// inverse of a numerically singular matrix.
	ErrSingularMatrix = ops.ErrSingularMatrix

	// ErrForeignVar reports a variable that does not belong to the tape it
	// is used with, or that was created before the tape was cleared.
	ErrForeignVar = errors.New("variable does not belong to this tape")
)
