package codec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/confdot/confdot/ir"
)

// decodeTOML parses TOML into an ordered tree. The document is walked
// expression by expression with the library's low-level parser because
// unmarshalling into maps would lose table and key order.
func decodeTOML(d []byte) (*ir.Node, error) {
	root := ir.FromKeyVals(nil)
	cur := root
	p := &unstable.Parser{}
	p.Reset(d)
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.KeyValue:
			if err := tomlKeyValue(cur, e); err != nil {
				return nil, err
			}
		case unstable.Table:
			t, err := tomlOpenTable(root, tomlKeyParts(e))
			if err != nil {
				return nil, err
			}
			cur = t
		case unstable.ArrayTable:
			t, err := tomlAppendTable(root, tomlKeyParts(e))
			if err != nil {
				return nil, err
			}
			cur = t
		}
	}
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
	}
	return root, nil
}

func tomlKeyParts(e *unstable.Node) []string {
	var parts []string
	it := e.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// tomlKeyValue assigns one key = value expression into obj, creating
// intermediate tables for dotted keys.
func tomlKeyValue(obj *ir.Node, e *unstable.Node) error {
	parts := tomlKeyParts(e)
	if len(parts) == 0 {
		return fmt.Errorf("%w: toml key-value without a key", ir.ErrParse)
	}
	val, err := tomlValue(e.Value())
	if err != nil {
		return err
	}
	parent, err := tomlOpenTable(obj, parts[:len(parts)-1])
	if err != nil {
		return err
	}
	parent.SetField(parts[len(parts)-1], val)
	return nil
}

// tomlOpenTable descends (creating as needed) the table at parts. An
// array of tables at an intermediate position resolves to its last
// element, which is where TOML appends.
func tomlOpenTable(cur *ir.Node, parts []string) (*ir.Node, error) {
	for _, part := range parts {
		next := ir.Get(cur, part)
		if next == nil {
			next = ir.FromKeyVals(nil)
			cur.SetField(part, next)
		}
		if next.Type == ir.ArrayType && len(next.Values) > 0 {
			next = next.Values[len(next.Values)-1]
		}
		if next.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: toml key %q is not a table", ir.ErrParse, part)
		}
		cur = next
	}
	return cur, nil
}

// tomlAppendTable handles [[a.b]]: a fresh table appended to the array
// at the path's last part.
func tomlAppendTable(root *ir.Node, parts []string) (*ir.Node, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: toml array table without a name", ir.ErrParse)
	}
	parent, err := tomlOpenTable(root, parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}
	last := parts[len(parts)-1]
	arr := ir.Get(parent, last)
	if arr == nil {
		arr = ir.FromSlice(nil)
		parent.SetField(last, arr)
	}
	if arr.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: toml key %q is not an array of tables", ir.ErrParse, last)
	}
	elt := ir.FromKeyVals(nil)
	elt.Parent = arr
	elt.ParentIndex = len(arr.Values)
	arr.Values = append(arr.Values, elt)
	return elt, nil
}

func tomlValue(n *unstable.Node) (*ir.Node, error) {
	switch n.Kind {
	case unstable.String:
		return ir.FromString(string(n.Data)), nil
	case unstable.Bool:
		return ir.FromBool(string(n.Data) == "true"), nil
	case unstable.Integer:
		raw := string(n.Data)
		i, err := strconv.ParseInt(strings.ReplaceAll(raw, "_", ""), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad toml integer %q: %v", ir.ErrParse, raw, err)
		}
		res := ir.FromInt(i)
		res.Number = raw
		return res, nil
	case unstable.Float:
		raw := string(n.Data)
		f, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad toml float %q: %v", ir.ErrParse, raw, err)
		}
		res := ir.FromFloat(f)
		res.Number = raw
		return res, nil
	case unstable.DateTime, unstable.LocalDateTime, unstable.LocalDate, unstable.LocalTime:
		// dates are carried as strings; they re-encode quoted
		return ir.FromString(string(n.Data)), nil
	case unstable.Array:
		var vals []*ir.Node
		it := n.Children()
		for it.Next() {
			v, err := tomlValue(it.Node())
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return ir.FromSlice(vals), nil
	case unstable.InlineTable:
		obj := ir.FromKeyVals(nil)
		it := n.Children()
		for it.Next() {
			if err := tomlKeyValue(obj, it.Node()); err != nil {
				return nil, err
			}
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("%w: unsupported toml value kind %v", ir.ErrParse, n.Kind)
	}
}

// encodeTOML writes the tree in TOML's canonical sectioned form,
// keeping fields in tree order: inline-valued keys first, then one
// [table] or [[table]] block per object or array-of-objects field.
func encodeTOML(root *ir.Node) ([]byte, error) {
	if root.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: toml requires a table at the top level, got %s", ir.ErrParse, root.Type)
	}
	buf := bytes.NewBuffer(nil)
	if err := writeTOMLTable(buf, root, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTOMLTable(buf *bytes.Buffer, node *ir.Node, path []string) error {
	type sub struct {
		name  string
		val   *ir.Node
		array bool
	}
	var subs []sub
	for i := range node.Fields {
		name := node.Fields[i].String
		val := node.Values[i]
		switch {
		case val.Type == ir.ObjectType:
			subs = append(subs, sub{name: name, val: val})
		case val.Type == ir.ArrayType && len(val.Values) > 0 && allTables(val):
			subs = append(subs, sub{name: name, val: val, array: true})
		default:
			text, err := tomlText(val)
			if err != nil {
				return fmt.Errorf("cannot encode %s: %w", strings.Join(append(path, name), "."), err)
			}
			fmt.Fprintf(buf, "%s = %s\n", tomlKey(name), text)
		}
	}
	for _, s := range subs {
		sp := make([]string, len(path)+1)
		copy(sp, path)
		sp[len(path)] = s.name
		header := tomlHeader(sp)
		if s.array {
			for _, elt := range s.val.Values {
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				fmt.Fprintf(buf, "[[%s]]\n", header)
				if err := writeTOMLTable(buf, elt, sp); err != nil {
					return err
				}
			}
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "[%s]\n", header)
		if err := writeTOMLTable(buf, s.val, sp); err != nil {
			return err
		}
	}
	return nil
}

func allTables(arr *ir.Node) bool {
	for _, elt := range arr.Values {
		if elt.Type != ir.ObjectType {
			return false
		}
	}
	return true
}

// tomlText renders a value in inline position. Objects only reach here
// inside mixed arrays, where TOML requires inline-table syntax.
func tomlText(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.StringType:
		return tomlQuote(node.String), nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.NumberType:
		if node.Number != "" {
			return node.Number, nil
		}
		if node.Int64 != nil {
			return strconv.FormatInt(*node.Int64, 10), nil
		}
		return tomlFloat(*node.Float64), nil
	case ir.NullType:
		return "", fmt.Errorf("%w: toml cannot represent null", ir.ErrParse)
	case ir.ArrayType:
		parts := make([]string, len(node.Values))
		for i, elt := range node.Values {
			text, err := tomlText(elt)
			if err != nil {
				return "", err
			}
			parts[i] = text
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case ir.ObjectType:
		parts := make([]string, len(node.Fields))
		for i := range node.Fields {
			text, err := tomlText(node.Values[i])
			if err != nil {
				return "", err
			}
			parts[i] = fmt.Sprintf("%s = %s", tomlKey(node.Fields[i].String), text)
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	default:
		return "", fmt.Errorf("%w: cannot encode %s as toml", ir.ErrParse, node.Type)
	}
}

// tomlFloat renders f so it reads back as a float: always with a dot or
// exponent, and with TOML's spellings for the specials.
func tomlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func tomlKey(name string) string {
	if name == "" {
		return `""`
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return tomlQuote(name)
		}
	}
	return name
}

func tomlHeader(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = tomlKey(p)
	}
	return strings.Join(quoted, ".")
}

func tomlQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
