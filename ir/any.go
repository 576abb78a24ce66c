package ir

import (
	"encoding/json"
	"fmt"
	"time"
)

// FromAny converts a plain Go value into a node. Map fields come out in
// sorted key order since Go maps carry no order of their own; decoders
// that know the source order build objects with FromKeyVals instead.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			res := FromInt(i)
			res.Number = x.String()
			return res, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrParse, x.String())
		}
		res := FromFloat(f)
		res.Number = x.String()
		return res, nil
	case time.Time:
		return FromString(x.Format(time.RFC3339)), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for key, elt := range x {
			val, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return FromMap(m), nil
	case []any:
		vals := make([]*Node, len(x))
		for i, elt := range x {
			val, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return FromSlice(vals), nil
	case []string:
		vals := make([]*Node, len(x))
		for i, elt := range x {
			vals[i] = FromString(elt)
		}
		return FromSlice(vals), nil
	default:
		return nil, fmt.Errorf("%w: cannot represent %T", ErrParse, v)
	}
}

// ToAny converts a node into plain Go values: nested map[string]any,
// []any, string, int64, float64, bool, or nil.
func ToAny(node *Node) any {
	switch node.Type {
	case ObjectType:
		n := len(node.Fields)
		res := make(map[string]any, n)
		for i := range n {
			res[node.Fields[i].String] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	case BoolType:
		return node.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}
