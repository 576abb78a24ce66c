package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: query requires 2 arguments, an expression and a file", cli.ErrUsage)
	}
	src, file := args[0], args[1]
	c, err := openConfig(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	v, err := c.Query(src)
	if err != nil {
		return fmt.Errorf("error querying %s with %q: %w", file, src, err)
	}
	return printValue(cc.Out, v)
}
