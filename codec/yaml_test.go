package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/confdot/confdot/ir"
)

func TestYAMLDecodeOrder(t *testing.T) {
	in := `z: 1
a:
  y: true
  b: null
l:
  - 1
  - two
`
	root, err := decodeYAML([]byte(in))
	if err != nil {
		t.Fatalf("decodeYAML: %v", err)
	}
	var got []string
	for i := range root.Fields {
		got = append(got, root.Fields[i].String)
	}
	if diff := cmp.Diff([]string{"z", "a", "l"}, got); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
	want := map[string]any{
		"z": int64(1),
		"a": map[string]any{"y": true, "b": nil},
		"l": []any{int64(1), "two"},
	}
	if diff := cmp.Diff(want, ir.ToAny(root)); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLEncodeScalars(t *testing.T) {
	root := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("a"), Val: ir.FromInt(1)},
		{Key: ir.FromString("b"), Val: ir.FromString("hello")},
	})
	d, err := encodeYAML(root)
	if err != nil {
		t.Fatalf("encodeYAML: %v", err)
	}
	want := "a: 1\nb: hello\n"
	if diff := cmp.Diff(want, string(d)); diff != "" {
		t.Errorf("encoded text mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	in := `name: app
server:
  port: 8080
  hosts:
    - a
    - b
ratio: 0.5
debug: true
`
	root, err := decodeYAML([]byte(in))
	if err != nil {
		t.Fatalf("decodeYAML: %v", err)
	}
	d, err := encodeYAML(root)
	if err != nil {
		t.Fatalf("encodeYAML: %v", err)
	}
	back, err := decodeYAML(d)
	if err != nil {
		t.Fatalf("decodeYAML(encoded): %v", err)
	}
	if diff := cmp.Diff(ir.ToAny(root), ir.ToAny(back)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	// field order survives the trip
	var order []string
	for i := range back.Fields {
		order = append(order, back.Fields[i].String)
	}
	if diff := cmp.Diff([]string{"name", "server", "ratio", "debug"}, order); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLDecodeError(t *testing.T) {
	if _, err := decodeYAML([]byte("a: [1, 2\n")); !errors.Is(err, ir.ErrParse) {
		t.Errorf("decodeYAML(bad) = %v, want ErrParse", err)
	}
}
