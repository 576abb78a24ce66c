package ir

import "fmt"

// Mode selects whether a bulk mutation works on the given tree or on a
// fresh clone of it.
type Mode int

const (
	// InPlace mutates the passed tree directly.
	InPlace Mode = iota
	// OnCopy clones the tree first and returns the mutated clone,
	// leaving the original untouched.
	OnCopy
)

// LookupPath descends root one segment at a time through object fields.
// An intermediate node that is not a mapping yields ErrParse naming the
// node's position via Path; an absent field yields ErrMissingKey naming
// the segment.
func LookupPath(root *Node, segments []string) (*Node, error) {
	res := root
	for _, seg := range segments {
		if res.Type != ObjectType {
			at := res.Path()
			if at == "" {
				at = seg
			}
			return nil, fmt.Errorf("%w: cannot get %q: %q is not subscriptable", ErrParse, seg, at)
		}
		next := Get(res, seg)
		if next == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingKey, seg)
		}
		res = next
	}
	return res, nil
}

// LookupAll collects the value of every mapping entry anywhere in the
// tree whose field name equals key. Order is depth-first pre-order:
// object fields in insertion order (collecting a match before descending
// into that same original child), then array elements in index order.
// It never fails; no matches yields an empty slice.
func LookupAll(root *Node, key string) []*Node {
	return lookupAll(root, key, nil)
}

func lookupAll(node *Node, key string, dst []*Node) []*Node {
	switch node.Type {
	case ObjectType:
		for i := range node.Fields {
			if node.Fields[i].String == key {
				dst = append(dst, node.Values[i])
			}
			dst = lookupAll(node.Values[i], key, dst)
		}
	case ArrayType:
		for _, yv := range node.Values {
			dst = lookupAll(yv, key, dst)
		}
	}
	return dst
}

// CountKey returns how many mapping entries in the tree have the field
// name key, using the same traversal as LookupAll.
func CountKey(root *Node, key string) int {
	count := 0
	switch root.Type {
	case ObjectType:
		for i := range root.Fields {
			if root.Fields[i].String == key {
				count++
			}
			count += CountKey(root.Values[i], key)
		}
	case ArrayType:
		for _, yv := range root.Values {
			count += CountKey(yv, key)
		}
	}
	return count
}

// UpdateAll replaces the value of every mapping entry named key with a
// clone of val. Replaced entries are not descended into, so a key inside
// the replacement value is never visited.
func UpdateAll(root *Node, key string, val *Node, mode Mode) *Node {
	if mode == OnCopy {
		root = root.Clone()
	}
	updateAll(root, key, val)
	return root
}

func updateAll(node *Node, key string, val *Node) {
	switch node.Type {
	case ObjectType:
		for i := range node.Fields {
			if node.Fields[i].String == key {
				child := val.Clone()
				child.Parent = node
				child.ParentIndex = i
				child.ParentField = key
				node.Values[i] = child
				continue
			}
			updateAll(node.Values[i], key, val)
		}
	case ArrayType:
		for _, yv := range node.Values {
			updateAll(yv, key, val)
		}
	}
}

// DeleteAll removes every mapping entry named key anywhere in the tree.
// Entries that remain are descended into; removed values are not.
func DeleteAll(root *Node, key string, mode Mode) *Node {
	if mode == OnCopy {
		root = root.Clone()
	}
	deleteAll(root, key)
	return root
}

func deleteAll(node *Node, key string) {
	switch node.Type {
	case ObjectType:
		i := 0
		for i < len(node.Fields) {
			if node.Fields[i].String == key {
				node.removeFieldAt(i)
				continue
			}
			deleteAll(node.Values[i], key)
			i++
		}
	case ArrayType:
		for _, yv := range node.Values {
			deleteAll(yv, key)
		}
	}
}
