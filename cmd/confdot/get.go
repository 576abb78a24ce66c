package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/confdot/confdot"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: get requires 2 arguments, a key and a file", cli.ErrUsage)
	}
	key, file := args[0], args[1]
	if key == "" {
		return fmt.Errorf("%w: invalid key \"\"", cli.ErrUsage)
	}
	c, err := openConfig(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	v, err := c.Get(key, confdot.ParseTypes(cfg.P), confdot.All(cfg.A))
	if err != nil {
		return fmt.Errorf("error getting %q from %s: %w", key, file, err)
	}
	return printValue(cc.Out, v)
}

// printValue renders scalars plainly and composites as yaml, which reads
// well for both lists from -a and nested objects.
func printValue(w io.Writer, v any) error {
	switch t := v.(type) {
	case nil:
		_, err := io.WriteString(w, "null\n")
		return err
	case string:
		_, err := fmt.Fprintf(w, "%s\n", t)
		return err
	case bool, int64, float64:
		_, err := fmt.Fprintf(w, "%v\n", t)
		return err
	default:
		d, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
}
