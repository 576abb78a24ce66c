package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := canonical(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := canonical(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if a == b {
		return nil
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(a, b, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if cfg.useColors(cc.Out) {
		_, err = io.WriteString(cc.Out, dmp.DiffPrettyText(diffs))
	} else {
		_, err = io.WriteString(cc.Out, plainDiff(diffs))
	}
	if err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// canonical renders a file through its codec so that formatting-only
// differences (key order aside) do not show up as diffs.
func canonical(cfg *MainConfig, cc *cli.Context, arg string) (string, error) {
	c, err := openConfig(cfg, cc, arg)
	if err != nil {
		return "", err
	}
	if cfg.OutFormat != nil {
		return c.ConvertTo(*cfg.OutFormat)
	}
	return c.Stringify()
}

func plainDiff(diffs []diffpatch.Diff) string {
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(d.Text)
			sb.WriteString("-]")
		case diffpatch.DiffInsert:
			sb.WriteString("{+")
			sb.WriteString(d.Text)
			sb.WriteString("+}")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}
