package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/confdot/confdot/ir"
)

func TestINIDecode(t *testing.T) {
	in := `top = 1

[server]
host = localhost
port = 8080

[auth]
user = admin
`
	root, err := decodeINI([]byte(in))
	if err != nil {
		t.Fatalf("decodeINI: %v", err)
	}
	want := map[string]any{
		"top": "1",
		"server": map[string]any{
			"host": "localhost",
			"port": "8080",
		},
		"auth": map[string]any{
			"user": "admin",
		},
	}
	if diff := cmp.Diff(want, ir.ToAny(root)); diff != "" {
		t.Errorf("decoded value mismatch (-want +got):\n%s", diff)
	}
	var got []string
	for i := range root.Fields {
		got = append(got, root.Fields[i].String)
	}
	if diff := cmp.Diff([]string{"top", "server", "auth"}, got); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}
}

func TestINIRoundTrip(t *testing.T) {
	in := `name = app

[db]
host = localhost
port = 5432
`
	root, err := decodeINI([]byte(in))
	if err != nil {
		t.Fatalf("decodeINI: %v", err)
	}
	d, err := encodeINI(root)
	if err != nil {
		t.Fatalf("encodeINI: %v", err)
	}
	back, err := decodeINI(d)
	if err != nil {
		t.Fatalf("decodeINI(encoded): %v", err)
	}
	if diff := cmp.Diff(ir.ToAny(root), ir.ToAny(back)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestINIEncodeScalars(t *testing.T) {
	root := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("n"), Val: ir.FromInt(5)},
		{Key: ir.FromString("ok"), Val: ir.FromBool(true)},
		{Key: ir.FromString("tags"), Val: ir.FromSlice([]*ir.Node{
			ir.FromString("a"), ir.FromString("b"),
		})},
	})
	d, err := encodeINI(root)
	if err != nil {
		t.Fatalf("encodeINI: %v", err)
	}
	back, err := decodeINI(d)
	if err != nil {
		t.Fatalf("decodeINI(encoded): %v", err)
	}
	want := map[string]any{
		"n":    "5",
		"ok":   "true",
		"tags": "a, b",
	}
	if diff := cmp.Diff(want, ir.ToAny(back)); diff != "" {
		t.Errorf("scalar encoding mismatch (-want +got):\n%s", diff)
	}
}

func TestINIEncodeTooDeep(t *testing.T) {
	root := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("a"), Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.FromString("b"), Val: ir.FromKeyVals([]ir.KeyVal{
				{Key: ir.FromString("c"), Val: ir.FromInt(1)},
			})},
		})},
	})
	if _, err := encodeINI(root); !errors.Is(err, ir.ErrParse) {
		t.Errorf("encodeINI(3 levels) = %v, want ErrParse", err)
	}
}

func TestINIEncodeNonObject(t *testing.T) {
	if _, err := encodeINI(ir.FromString("x")); !errors.Is(err, ir.ErrParse) {
		t.Error("encodeINI of a scalar should fail")
	}
}
