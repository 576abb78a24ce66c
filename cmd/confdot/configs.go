package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/confdot/confdot/format"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='render with color'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type GetConfig struct {
	*MainConfig

	P bool `cli:"name=p aliases=parse desc='coerce string values to native types'"`
	A bool `cli:"name=a aliases=all desc='match every occurrence of the key'"`

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	A bool `cli:"name=a aliases=all desc='update every occurrence of the key'"`

	Set *cli.Command
}

type DeleteConfig struct {
	*MainConfig

	A bool `cli:"name=a aliases=all desc='delete every occurrence of the key'"`

	Delete *cli.Command
}

type HasConfig struct {
	*MainConfig

	Has *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}
