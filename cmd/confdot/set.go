package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/confdot/confdot"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires 3 arguments, a key, a value and a file", cli.ErrUsage)
	}
	key, raw, file := args[0], args[1], args[2]
	c, err := openConfig(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	// the value argument is yaml, so `5`, `true` and `[a, b]` come in
	// typed while `"5"` stays a string
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return fmt.Errorf("%w: invalid value %q: %v", cli.ErrUsage, raw, err)
	}
	if err := c.Set(key, value, confdot.All(cfg.A)); err != nil {
		return fmt.Errorf("error setting %q in %s: %w", key, file, err)
	}
	return writeBack(cfg.MainConfig, cc, c, file)
}
