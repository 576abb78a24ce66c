package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/confdot/confdot"
)

// openConfig opens the config file named by arg, with "-" meaning the
// command input. Stdin carries no extension, so it requires -I.
func openConfig(cfg *MainConfig, cc *cli.Context, arg string) (*confdot.ConfigFile, error) {
	if arg == "-" {
		if cfg.InFormat == nil {
			return nil, fmt.Errorf("%w: reading stdin requires -I", cli.ErrUsage)
		}
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return confdot.New("stdin"+cfg.InFormat.Suffix(),
			confdot.WithContents(string(d)),
			confdot.WithFormat(*cfg.InFormat))
	}
	opts := []confdot.FileOption{}
	if cfg.InFormat != nil {
		opts = append(opts, confdot.WithFormat(*cfg.InFormat))
	}
	return confdot.New(arg, opts...)
}

// writeBack persists the result of an edit: in place when the target is
// a real file and no -o was given, to the command output otherwise.
func writeBack(cfg *MainConfig, cc *cli.Context, c *confdot.ConfigFile, arg string) error {
	if arg != "-" && cfg.Out == "" {
		return c.Save()
	}
	text, err := c.Stringify()
	if err != nil {
		return err
	}
	_, err = io.WriteString(cc.Out, text)
	return err
}
