package ops

import "errors"

// ErrSingularMatrix is returned by Chain when a node needs the inverse of a
// matrix that is numerically singular.
var ErrSingularMatrix = errors.New("singular matrix")
