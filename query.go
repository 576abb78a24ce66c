package confdot

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/confdot/confdot/ir"
)

// Query evaluates an expr expression against the parsed tree. Top-level
// mapping entries become variables; a non-mapping root is exposed as
// "value".
//
// Example:
//
//	cfg.Query("calendar.sunday_index + 1")
func (c *ConfigFile) Query(src string) (any, error) {
	var env map[string]any
	switch x := ir.ToAny(c.parser.Root()).(type) {
	case map[string]any:
		env = x
	default:
		env = map[string]any{"value": x}
	}
	prog, err := expr.Compile(src, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
	}
	return expr.Run(prog, env)
}
