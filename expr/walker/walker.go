// Package walker provides iterative traversal utilities over encoded
// expressions.
//
// All traversals run on an explicit stack with pre-allocated capacity, so
// arbitrarily tall trees cost heap, never call-stack. Visiting decodes one
// level at a time through expr.AnyExprRef.View — zero-copy throughout, no
// allocation beyond the stack itself.
package walker

import (
	"github.com/BoyeGuillaume/hyperion/expr"
	"github.com/BoyeGuillaume/hyperion/expr/variant"
)

// initialStackCapacity pre-sizes traversal stacks; typical expression depth
// is well under this.
const initialStackCapacity = 64

// Visitor is called for each visited node. For pre-order walks, returning
// false skips the node's children; for post-order walks the return value
// ends the walk early when false.
type Visitor func(ref expr.AnyExprRef, depth int) bool

type item struct {
	ref   expr.AnyExprRef
	depth int
}

// Walk visits the tree under root in pre-order (parent before children,
// children in child order). The visitor can prune a subtree by returning
// false.
func Walk(root expr.AnyExprRef, fn Visitor) {
	stack := make([]item, 1, initialStackCapacity)
	stack[0] = item{ref: root}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.ref, it.depth) {
			continue
		}
		v := it.ref.View()
		for i := v.NumChildren() - 1; i >= 0; i-- {
			stack = append(stack, item{ref: v.Child(i), depth: it.depth + 1})
		}
	}
}

// WalkPost visits the tree under root in post-order (children before
// parent). Returning false from the visitor stops the walk.
func WalkPost(root expr.AnyExprRef, fn Visitor) {
	type frame struct {
		ref   expr.AnyExprRef
		depth int
		exit  bool
	}
	stack := make([]frame, 1, initialStackCapacity)
	stack[0] = frame{ref: root}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.exit {
			if !fn(f.ref, f.depth) {
				return
			}
			continue
		}
		stack = append(stack, frame{ref: f.ref, depth: f.depth, exit: true})
		v := f.ref.View()
		for i := v.NumChildren() - 1; i >= 0; i-- {
			stack = append(stack, frame{ref: v.Child(i), depth: f.depth + 1})
		}
	}
}

// Count returns the number of nodes in the tree under root.
func Count(root expr.AnyExprRef) int {
	n := 0
	Walk(root, func(expr.AnyExprRef, int) bool {
		n++
		return true
	})
	return n
}

// Depth returns the height of the tree under root: 1 for a leaf.
func Depth(root expr.AnyExprRef) int {
	max := 0
	Walk(root, func(_ expr.AnyExprRef, depth int) bool {
		if depth+1 > max {
			max = depth + 1
		}
		return true
	})
	return max
}

// ContainsTag reports whether any node under root has the given tag.
func ContainsTag(root expr.AnyExprRef, tag variant.Tag) bool {
	found := false
	Walk(root, func(ref expr.AnyExprRef, _ int) bool {
		if found {
			return false
		}
		if ref.Type() == tag {
			found = true
			return false
		}
		return true
	})
	return found
}

// Variables returns the distinct inline variables mentioned under root
// (occurrences and binders alike), in first-visit order.
func Variables(root expr.AnyExprRef) []expr.Variable {
	var out []expr.Variable
	seen := make(map[expr.Variable]struct{})
	Walk(root, func(ref expr.AnyExprRef, _ int) bool {
		v := ref.View()
		switch v.Tag() {
		case variant.Variable, variant.Forall, variant.Exists:
			if _, ok := seen[v.Var()]; !ok {
				seen[v.Var()] = struct{}{}
				out = append(out, v.Var())
			}
		}
		return true
	})
	return out
}
