package parser

type parserOpts struct {
	parseTypes bool
	all        bool
}

type Option func(*parserOpts)

// ParseTypes coerces string-typed results into their inferred native
// types (bool, int64, float64, list) on Get.
func ParseTypes(v bool) Option {
	return func(o *parserOpts) { o.parseTypes = v }
}

// All switches the operation to all-occurrences mode: the key matches
// every mapping entry with that name anywhere in the tree.
func All(v bool) Option {
	return func(o *parserOpts) { o.all = v }
}

func getOpts(options []Option) *parserOpts {
	o := &parserOpts{}
	for _, f := range options {
		f(o)
	}
	return o
}
