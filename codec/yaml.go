package codec

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/confdot/confdot/ir"
)

// decodeYAML parses YAML into an ordered tree. Mappings decode as
// yaml.MapSlice so insertion order survives.
func decodeYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
	}
	node, err := fromYAMLAny(v)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func fromYAMLAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			val, err := fromYAMLAny(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, elt := range x {
			val, err := fromYAMLAny(elt)
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return ir.FromSlice(vals), nil
	default:
		return ir.FromAny(v)
	}
}

func encodeYAML(root *ir.Node) ([]byte, error) {
	d, err := yaml.Marshal(toYAMLAny(root))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
	}
	return d, nil
}

// toYAMLAny mirrors ir.ToAny but emits yaml.MapSlice for objects so the
// marshaller keeps field order.
func toYAMLAny(node *ir.Node) any {
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i := range node.Fields {
			res[i] = yaml.MapItem{
				Key:   node.Fields[i].String,
				Value: toYAMLAny(node.Values[i]),
			}
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = toYAMLAny(elt)
		}
		return res
	default:
		return ir.ToAny(node)
	}
}
