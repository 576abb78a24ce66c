package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/confdot/confdot/ir"
)

// decodeJSON parses JSON into an ordered tree. The stdlib decoder is
// driven token by token because unmarshalling into maps would lose field
// order. Input is passed through jsonc first so commented JSON loads.
func decodeJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(d)))
	dec.UseNumber()
	node, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ir.ErrParse)
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var kvs []ir.KeyVal
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not a string", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return ir.FromKeyVals(kvs), nil
		case '[':
			var vals []*ir.Node
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				vals = append(vals, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return ir.FromSlice(vals), nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return ir.FromString(t), nil
	case json.Number:
		return ir.FromAny(t)
	case bool:
		return ir.FromBool(t), nil
	case nil:
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// encodeJSON writes the tree as JSON with 4-space indentation, keeping
// object fields in tree order. Hand-rolled for the same reason the
// decoder is: stdlib marshalling of maps sorts keys.
func encodeJSON(root *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, root, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const jsonIndent = "    "

func writeJSON(buf *bytes.Buffer, node *ir.Node, depth int) error {
	switch node.Type {
	case ir.ObjectType:
		if len(node.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := range node.Fields {
			buf.WriteString(strings.Repeat(jsonIndent, depth+1))
			buf.WriteString(quoteJSON(node.Fields[i].String))
			buf.WriteString(": ")
			if err := writeJSON(buf, node.Values[i], depth+1); err != nil {
				return err
			}
			if i < len(node.Fields)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(jsonIndent, depth))
		buf.WriteByte('}')
		return nil
	case ir.ArrayType:
		if len(node.Values) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, elt := range node.Values {
			buf.WriteString(strings.Repeat(jsonIndent, depth+1))
			if err := writeJSON(buf, elt, depth+1); err != nil {
				return err
			}
			if i < len(node.Values)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(jsonIndent, depth))
		buf.WriteByte(']')
		return nil
	case ir.StringType:
		buf.WriteString(quoteJSON(node.String))
		return nil
	case ir.NumberType:
		if node.Number != "" {
			buf.WriteString(node.Number)
			return nil
		}
		if node.Int64 != nil {
			buf.WriteString(strconv.FormatInt(*node.Int64, 10))
			return nil
		}
		buf.WriteString(strconv.FormatFloat(*node.Float64, 'g', -1, 64))
		return nil
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(node.Bool))
		return nil
	case ir.NullType:
		buf.WriteString("null")
		return nil
	default:
		return fmt.Errorf("%w: cannot encode %s as json", ir.ErrParse, node.Type)
	}
}

func quoteJSON(s string) string {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
