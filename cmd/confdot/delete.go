package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/confdot/confdot"
)

func del(cfg *DeleteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Delete.Parse(cc, args)
	if err != nil {
		cfg.Delete.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: delete requires 2 arguments, a key and a file", cli.ErrUsage)
	}
	key, file := args[0], args[1]
	c, err := openConfig(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	if err := c.Delete(key, confdot.All(cfg.A)); err != nil {
		return fmt.Errorf("error deleting %q from %s: %w", key, file, err)
	}
	return writeBack(cfg.MainConfig, cc, c, file)
}
