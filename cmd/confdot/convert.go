package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: convert requires 1 argument, a file", cli.ErrUsage)
	}
	if cfg.OutFormat == nil {
		return fmt.Errorf("%w: convert requires -O", cli.ErrUsage)
	}
	file := args[0]
	c, err := openConfig(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	text, err := c.ConvertTo(*cfg.OutFormat)
	if err != nil {
		return fmt.Errorf("error converting %s to %s: %w", file, cfg.OutFormat, err)
	}
	_, err = io.WriteString(cc.Out, text)
	return err
}
