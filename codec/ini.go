package codec

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/confdot/confdot/ir"
)

func init() {
	// "key = value" without value alignment, the way config files are
	// usually written by hand.
	ini.PrettyFormat = false
}

// decodeINI parses INI text into a two-level tree: sections are object
// fields whose values are objects of string-valued keys. Keys outside
// any section become top-level string entries.
func decodeINI(d []byte) (*ir.Node, error) {
	f, err := ini.Load(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
	}
	var kvs []ir.KeyVal
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			for _, k := range sec.Keys() {
				kvs = append(kvs, ir.KeyVal{
					Key: ir.FromString(k.Name()),
					Val: ir.FromString(k.Value()),
				})
			}
			continue
		}
		secKVs := make([]ir.KeyVal, 0, len(sec.Keys()))
		for _, k := range sec.Keys() {
			secKVs = append(secKVs, ir.KeyVal{
				Key: ir.FromString(k.Name()),
				Val: ir.FromString(k.Value()),
			})
		}
		kvs = append(kvs, ir.KeyVal{
			Key: ir.FromString(sec.Name()),
			Val: ir.FromKeyVals(secKVs),
		})
	}
	return ir.FromKeyVals(kvs), nil
}

func encodeINI(root *ir.Node) ([]byte, error) {
	if root.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: ini requires a mapping at the top level, got %s", ir.ErrParse, root.Type)
	}
	f := ini.Empty()
	for i := range root.Fields {
		name := root.Fields[i].String
		val := root.Values[i]
		if val.Type != ir.ObjectType {
			text, err := iniText(val)
			if err != nil {
				return nil, err
			}
			if _, err := f.Section(ini.DefaultSection).NewKey(name, text); err != nil {
				return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
			}
			continue
		}
		sec, err := f.NewSection(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
		}
		for j := range val.Fields {
			text, err := iniText(val.Values[j])
			if err != nil {
				return nil, fmt.Errorf("cannot encode %s.%s: %w", name, val.Fields[j].String, err)
			}
			if _, err := sec.NewKey(val.Fields[j].String, text); err != nil {
				return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
			}
		}
	}
	buf := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
	}
	return buf.Bytes(), nil
}

// iniText renders a scalar or flat list as INI value text. Objects are
// refused: ini nests exactly two levels, section then key.
func iniText(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.StringType:
		return node.String, nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.NumberType:
		if node.Number != "" {
			return node.Number, nil
		}
		if node.Int64 != nil {
			return strconv.FormatInt(*node.Int64, 10), nil
		}
		return strconv.FormatFloat(*node.Float64, 'g', -1, 64), nil
	case ir.NullType:
		return "", nil
	case ir.ArrayType:
		parts := make([]string, len(node.Values))
		for i, elt := range node.Values {
			text, err := iniText(elt)
			if err != nil {
				return "", err
			}
			parts[i] = text
		}
		return strings.Join(parts, ", "), nil
	default:
		return "", fmt.Errorf("%w: ini cannot nest deeper than section and key", ir.ErrParse)
	}
}
