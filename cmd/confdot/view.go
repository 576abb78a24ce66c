package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/scott-cotton/cli"

	"github.com/confdot/confdot/format"
	"github.com/confdot/confdot/ir"
	"github.com/confdot/confdot/parser"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		if err := viewFile(cfg, cc, file); err != nil {
			return err
		}
		if i < len(args)-1 {
			cc.Out.Write([]byte("\n---\n"))
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, file string) error {
	var (
		r    io.Reader
		fmat format.Format
		err  error
	)
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
		fmat, err = format.FromPath(file)
		if err != nil {
			return err
		}
	} else {
		if cfg.InFormat == nil {
			return fmt.Errorf("%w: reading stdin requires -I", cli.ErrUsage)
		}
		r = cc.In
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error reading %q: %w", file, err)
	}
	p, err := parser.New(fmat, d)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	colors := NoColors()
	if cfg.useColors(cc.Out) {
		colors = NewColors()
	}
	return renderNode(cc.Out, colors, p.Root(), "")
}

func renderNode(w io.Writer, colors *Colors, y *ir.Node, indent string) error {
	switch y.Type {
	case ir.ObjectType:
		if len(y.Fields) == 0 {
			_, err := io.WriteString(w, indent+"{}\n")
			return err
		}
		for i, f := range y.Fields {
			field := colors.Color(ir.ObjectType, FieldColor, f.String)
			sep := colors.Color(ir.ObjectType, SepColor, ":")
			v := y.Values[i]
			if v.Type == ir.ObjectType || v.Type == ir.ArrayType {
				if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, field, sep); err != nil {
					return err
				}
				if err := renderNode(w, colors, v, indent+"  "); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s%s%s %s\n", indent, field, sep, coloredScalar(colors, v)); err != nil {
				return err
			}
		}
		return nil
	case ir.ArrayType:
		if len(y.Values) == 0 {
			_, err := io.WriteString(w, indent+"[]\n")
			return err
		}
		for _, v := range y.Values {
			sep := colors.Color(ir.ArrayType, SepColor, "-")
			if v.Type == ir.ObjectType || v.Type == ir.ArrayType {
				if _, err := fmt.Fprintf(w, "%s%s\n", indent, sep); err != nil {
					return err
				}
				if err := renderNode(w, colors, v, indent+"  "); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s%s %s\n", indent, sep, coloredScalar(colors, v)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(w, "%s%s\n", indent, coloredScalar(colors, y))
		return err
	}
}

func coloredScalar(colors *Colors, y *ir.Node) string {
	return colors.Color(y.Type, ValueColor, scalarText(y))
}

func scalarText(y *ir.Node) string {
	switch y.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return strconv.FormatBool(y.Bool)
	case ir.NumberType:
		// Number holds raw text only when the source format kept it
		if y.Number != "" {
			return y.Number
		}
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
	default:
		return y.String
	}
}
