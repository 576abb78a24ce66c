package confdot

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/confdot/confdot/codec"
	"github.com/confdot/confdot/debug"
	"github.com/confdot/confdot/format"
	"github.com/confdot/confdot/ir"
)

// MergePatch applies an RFC 7386 JSON merge patch to the in-memory
// tree, whatever the file's own format. The tree goes through the JSON
// codec both ways, so field order is normalized to the merge result.
func (c *ConfigFile) MergePatch(patch []byte) error {
	jc, err := codec.For(format.JSONFormat)
	if err != nil {
		return err
	}
	doc, err := jc.Encode(c.parser.Root())
	if err != nil {
		return err
	}
	if debug.Patch() {
		debug.Logf("merge patch %s with %s\n", c.path, string(patch))
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return fmt.Errorf("%w: %v", ir.ErrParse, err)
	}
	root, err := jc.Decode(merged)
	if err != nil {
		return err
	}
	c.parser.Reset(root)
	c.dirty = true
	return nil
}

// ConvertTo serializes the in-memory tree with another format's codec.
// Converting to INI is subject to its two-level nesting limit.
func (c *ConfigFile) ConvertTo(f format.Format) (string, error) {
	cc, err := codec.For(f)
	if err != nil {
		return "", err
	}
	d, err := cc.Encode(c.parser.Root())
	if err != nil {
		return "", err
	}
	return string(d), nil
}
