package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func has(cfg *HasConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Has.Parse(cc, args)
	if err != nil {
		cfg.Has.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: has requires 2 arguments, a key and a file", cli.ErrUsage)
	}
	key, file := args[0], args[1]
	c, err := openConfig(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	ok := c.Has(key)
	fmt.Fprintf(cc.Out, "%v\n", ok)
	if !ok {
		return cli.ExitCodeErr(1)
	}
	return nil
}
