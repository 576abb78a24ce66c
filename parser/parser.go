// Package parser implements the format-agnostic adapter between a
// dotted-key API and one parsed config tree. A Parser owns its tree
// exclusively, mutates it in place, and never writes to disk; callers
// serialize with Stringify and persist the result themselves.
package parser

import (
	"fmt"

	"github.com/confdot/confdot/codec"
	"github.com/confdot/confdot/debug"
	"github.com/confdot/confdot/format"
	"github.com/confdot/confdot/ir"
	"github.com/confdot/confdot/keypath"
)

type Parser struct {
	codec codec.Codec
	root  *ir.Node
}

// New decodes contents with the codec for f. Malformed input fails here,
// not at first access.
func New(f format.Format, contents []byte) (*Parser, error) {
	c, err := codec.For(f)
	if err != nil {
		return nil, err
	}
	return NewWithCodec(c, contents)
}

// NewWithCodec is New with an injected codec.
func NewWithCodec(c codec.Codec, contents []byte) (*Parser, error) {
	root, err := c.Decode(contents)
	if err != nil {
		return nil, err
	}
	return &Parser{codec: c, root: root}, nil
}

func (p *Parser) Format() format.Format { return p.codec.Format }

// Root exposes the parsed tree. The tree is still owned by the parser;
// mutate it through Set and Delete.
func (p *Parser) Root() *ir.Node { return p.root }

// Reset replaces the parsed tree, discarding the previous one.
func (p *Parser) Reset(root *ir.Node) { p.root = root }

// Reparse decodes contents and replaces the parsed tree, discarding the
// previous one. The old tree survives a decode failure.
func (p *Parser) Reparse(contents []byte) error {
	root, err := p.codec.Decode(contents)
	if err != nil {
		return err
	}
	p.root = root
	return nil
}

// Get retrieves a value. With All, it returns a slice of every value
// whose key matches anywhere in the tree. A dotted key descends the
// tree segment by segment; a plain key is a single top-level lookup.
// With ParseTypes, string results are coerced element-wise.
func (p *Parser) Get(key string, options ...Option) (any, error) {
	o := getOpts(options)
	if debug.Lookup() {
		debug.Logf("get %q (all=%v, parseTypes=%v)\n", key, o.all, o.parseTypes)
	}
	if o.all {
		nodes := ir.LookupAll(p.root, key)
		res := make([]any, len(nodes))
		for i, n := range nodes {
			if o.parseTypes {
				res[i] = coerceNode(n)
				continue
			}
			res[i] = ir.ToAny(n)
		}
		return res, nil
	}
	node, err := p.lookup(key)
	if err != nil {
		return nil, err
	}
	if o.parseTypes {
		return coerceNode(node), nil
	}
	return ir.ToAny(node), nil
}

// coerceNode retypes every string leaf under node on a clone, so the
// parsed tree keeps its original text.
func coerceNode(node *ir.Node) any {
	c := node.Clone()
	c.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if !isPost {
			y.Retype()
		}
		return true, nil
	})
	return ir.ToAny(c)
}

func (p *Parser) lookup(key string) (*ir.Node, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ir.ErrMissingKey)
	}
	if keypath.IsDotted(key) {
		segs, err := keypath.Split(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
		}
		return ir.LookupPath(p.root, segs)
	}
	node := ir.Get(p.root, keypath.Unescape(key))
	if node == nil {
		return nil, fmt.Errorf("%w: %q", ir.ErrMissingKey, key)
	}
	return node, nil
}

// Set assigns value at key. With All, every matching entry in the tree
// is replaced. A dotted key walks to the parent of the last segment —
// intermediate levels are never created, a missing one is an error —
// and assigns there; a plain key assigns at the top level.
func (p *Parser) Set(key string, value any, options ...Option) error {
	o := getOpts(options)
	val, err := ir.FromAny(value)
	if err != nil {
		return err
	}
	if debug.Lookup() {
		debug.Logf("set %q (all=%v) to %v\n", key, o.all, val)
	}
	if o.all {
		ir.UpdateAll(p.root, key, val, ir.InPlace)
		return nil
	}
	if key == "" {
		return fmt.Errorf("%w: empty key", ir.ErrMissingKey)
	}
	parent := p.root
	field := key
	if keypath.IsDotted(key) {
		segs, err := keypath.Split(key)
		if err != nil {
			return fmt.Errorf("%w: %v", ir.ErrParse, err)
		}
		parent, err = ir.LookupPath(p.root, segs[:len(segs)-1])
		if err != nil {
			return err
		}
		field = segs[len(segs)-1]
	} else {
		field = keypath.Unescape(key)
	}
	if parent.Type != ir.ObjectType {
		return fmt.Errorf("%w: cannot set %q: %q is not subscriptable", ir.ErrParse, key, field)
	}
	parent.SetField(field, val)
	return nil
}

// Delete removes the entry at key. With All, every matching entry in
// the tree is removed. Deleting an absent key or path is an error.
func (p *Parser) Delete(key string, options ...Option) error {
	o := getOpts(options)
	if debug.Lookup() {
		debug.Logf("delete %q (all=%v)\n", key, o.all)
	}
	if o.all {
		ir.DeleteAll(p.root, key, ir.InPlace)
		return nil
	}
	if key == "" {
		return fmt.Errorf("%w: empty key", ir.ErrMissingKey)
	}
	parent := p.root
	field := key
	if keypath.IsDotted(key) {
		segs, err := keypath.Split(key)
		if err != nil {
			return fmt.Errorf("%w: %v", ir.ErrParse, err)
		}
		parent, err = ir.LookupPath(p.root, segs[:len(segs)-1])
		if err != nil {
			return err
		}
		field = segs[len(segs)-1]
	} else {
		field = keypath.Unescape(key)
	}
	if parent.Type != ir.ObjectType {
		return fmt.Errorf("%w: cannot delete %q: %q is not subscriptable", ir.ErrParse, key, field)
	}
	if !parent.DeleteField(field) {
		return fmt.Errorf("%w: %q", ir.ErrMissingKey, field)
	}
	return nil
}

// Has reports whether key is present: a dotted key resolves as a path,
// a plain key matches any occurrence at any depth.
func (p *Parser) Has(key string) bool {
	if key == "" {
		return false
	}
	if keypath.IsDotted(key) {
		segs, err := keypath.Split(key)
		if err != nil {
			return false
		}
		_, err = ir.LookupPath(p.root, segs)
		return err == nil
	}
	return ir.CountKey(p.root, keypath.Unescape(key)) > 0
}

// Stringify serializes the current tree into the format's canonical
// text form.
func (p *Parser) Stringify() (string, error) {
	d, err := p.codec.Encode(p.root)
	if err != nil {
		return "", err
	}
	return string(d), nil
}
