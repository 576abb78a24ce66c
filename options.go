package confdot

import "github.com/confdot/confdot/parser"

type facadeOpts struct {
	parserOpts []parser.Option
	def        any
	hasDefault bool
}

// Option configures Get, Set, and Delete. ParseTypes and WithDefault
// only affect Get; Set and Delete ignore them.
type Option func(*facadeOpts)

// ParseTypes coerces string-typed results into their inferred native
// types on Get.
func ParseTypes(v bool) Option {
	return func(o *facadeOpts) {
		o.parserOpts = append(o.parserOpts, parser.ParseTypes(v))
	}
}

// All switches the operation to all-occurrences mode.
func All(v bool) Option {
	return func(o *facadeOpts) {
		o.parserOpts = append(o.parserOpts, parser.All(v))
	}
}

// WithDefault makes Get return v instead of an error when the key
// cannot be resolved.
func WithDefault(v any) Option {
	return func(o *facadeOpts) {
		o.def = v
		o.hasDefault = true
	}
}

func collectOpts(options []Option) *facadeOpts {
	o := &facadeOpts{}
	for _, f := range options {
		f(o)
	}
	return o
}
