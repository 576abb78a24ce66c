package codec

import (
	"fmt"

	"github.com/confdot/confdot/format"
	"github.com/confdot/confdot/ir"
)

// Codec pairs the decode and encode halves of one file format. Decode
// turns raw file text into a tree and Encode turns a tree back into the
// format's canonical text form.
type Codec struct {
	Format format.Format
	Decode func([]byte) (*ir.Node, error)
	Encode func(*ir.Node) ([]byte, error)
}

// For returns the codec for f.
func For(f format.Format) (Codec, error) {
	switch f {
	case format.INIFormat:
		return Codec{Format: f, Decode: decodeINI, Encode: encodeINI}, nil
	case format.JSONFormat:
		return Codec{Format: f, Decode: decodeJSON, Encode: encodeJSON}, nil
	case format.YAMLFormat:
		return Codec{Format: f, Decode: decodeYAML, Encode: encodeYAML}, nil
	case format.TOMLFormat:
		return Codec{Format: f, Decode: decodeTOML, Encode: encodeTOML}, nil
	default:
		return Codec{}, fmt.Errorf("%w: %s", format.ErrBadFormat, f)
	}
}
