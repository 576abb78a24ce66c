package confdot

import (
	"github.com/confdot/confdot/format"
	"github.com/confdot/confdot/ir"
)

var (
	ErrParse      = ir.ErrParse
	ErrMissingKey = ir.ErrMissingKey
	ErrBadFormat  = format.ErrBadFormat
)
