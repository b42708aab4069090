// Package aggregate compacts prefix multisets into the minimal
// equivalent CIDR set: subsets are absorbed by wider prefixes and
// sibling pairs are merged into their parent, recursively.
package aggregate

import (
	"github.com/zan8in/libra/pkg/prefix"
	"golang.org/x/exp/slices"
)

// Aggregate returns the minimal, disjoint, sorted set of prefixes
// covering exactly the address space of the input. The input may hold
// duplicates and overlaps in any order; it is not modified.
func Aggregate[A prefix.Addr[A]](in []prefix.Prefix[A]) []prefix.Prefix[A] {
	if len(in) == 0 {
		return nil
	}

	nets := make([]prefix.Prefix[A], len(in))
	for i, p := range in {
		nets[i] = p.Masked()
	}
	slices.SortFunc(nets, func(a, b prefix.Prefix[A]) bool {
		return a.Compare(b) < 0
	})

	// Sorting puts a containing prefix before everything it contains,
	// so absorption and sibling merging both complete in one pass over
	// the sorted list. Merging two siblings can make the parent a
	// sibling of its left neighbour, hence the inner loop on the stack.
	stack := nets[:0]
	for _, p := range nets {
		if len(stack) > 0 && stack[len(stack)-1].Contains(p) {
			continue
		}
		stack = append(stack, p)
		for len(stack) > 1 && stack[len(stack)-2].IsSiblingOf(stack[len(stack)-1]) {
			parent := stack[len(stack)-2].Parent()
			stack = stack[:len(stack)-2]
			stack = append(stack, parent)
		}
	}

	// Safety pass: a freshly formed parent cannot overlap an earlier
	// survivor after absorption, but re-checking keeps the postcondition
	// independent of that argument.
	out := make([]prefix.Prefix[A], 0, len(stack))
	for _, p := range stack {
		if len(out) > 0 && out[len(out)-1].Contains(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
