package control

import "github.com/zeebo/errs"

// Error is the class of errors returned by this package.
var Error = errs.Class("control")

// ErrInvalidOperation is returned when the current block type does not
// support the requested accessor (e.g. reading data from a Null block).
var ErrInvalidOperation = Error.New("invalid operation")
