package bitpattern

import (
	"fmt"
	"strings"
)

// A Rule wraps one compiled pattern. Its position in the slice passed to
// NewTable is the index Match returns, which the caller assigns meaning to
// (typically an index into a parallel slice of decode functions). Rules are
// matched in the order passed to NewTable, but since
// NewTable requires exhaustive, non-overlapping coverage, order only
// affects which rule a conflict error blames first.
type Rule struct {
	Pattern *Pattern
}

// A Table is a fully validated, exhaustive mapping from every byte value to
// exactly one rule index.
type Table struct {
	rules []Rule
	owner [256]int // index into rules, or -1 (never, post-validation)
}

// NewTable validates that rules' coverage, after exclusions, partitions the
// full 256-byte space exactly once per byte, and builds a Table for O(1)
// lookup. It returns an error naming both offending rules on a conflict, or
// listing the bytes no rule covers.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{rules: rules}
	for i := range t.owner {
		t.owner[i] = -1
	}

	for i, r := range rules {
		for _, b := range r.Pattern.Possibilities() {
			if existing := t.owner[b]; existing != -1 {
				return nil, fmt.Errorf(
					"bitpattern: opcode 0x%02X matched by both %q and %q",
					b, rules[existing].Pattern, r.Pattern,
				)
			}
			t.owner[b] = i
		}
	}

	var uncovered []string
	for b := 0; b < 256; b++ {
		if t.owner[b] == -1 {
			uncovered = append(uncovered, fmt.Sprintf("0x%02X", b))
		}
	}
	if len(uncovered) > 0 {
		return nil, fmt.Errorf("bitpattern: %d opcode(s) not covered by any rule: %s", len(uncovered), strings.Join(uncovered, ", "))
	}

	return t, nil
}

// Match returns the index of the rule owning b and b's captures under that
// rule's pattern. It panics if b is outside 0..255, which cannot happen for
// a byte argument; it never returns a negative index given a successfully
// constructed Table.
func (t *Table) Match(b byte) (int, Captures) {
	idx := t.owner[b]
	return idx, t.rules[idx].Pattern.Extract(b)
}
