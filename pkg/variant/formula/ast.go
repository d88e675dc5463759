// Package formula parses variant dependency logic formulas such as
// "and(0, not([1]))" into a tree of gate applications over slot ids.
package formula

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// UnsetSlot is the slot id of a Slot that has not been assigned yet.
const UnsetSlot uint32 = math.MaxUint32

// Operator symbols understood by the grammar.
const (
	SymbolAnd = "and"
	SymbolOr  = "or"
	SymbolXor = "xor"
	SymbolNot = "not"
)

// Node is either an *Op or a *Slot.
type Node interface {
	isNode()
	render(b *strings.Builder)
}

// Op applies a gate symbol to an ordered list of children. The position
// of a child is the input port it will be connected to.
type Op struct {
	Symbol   string
	Children []Node
}

func (*Op) isNode() {}

func (o *Op) render(b *strings.Builder) {
	b.WriteString(o.Symbol)
	b.WriteByte('(')
	for i, child := range o.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		child.render(b)
	}
	b.WriteByte(')')
}

// Slot references a dependee by its position in the owning dependency.
type Slot struct {
	ID uint32
}

func (*Slot) isNode() {}

func (s *Slot) render(b *strings.Builder) {
	b.WriteString(strconv.FormatUint(uint64(s.ID), 10))
}

// AST is the parsed form of a dependency logic formula. The zero value
// is invalid, as is an AST that failed to parse.
type AST struct {
	Root Node
}

// NewAST returns an AST rooted at n.
func NewAST(n Node) *AST {
	return &AST{Root: n}
}

// IsValid reports whether the root is a set Slot or an Op with a symbol
// and at least one child. Children are not inspected.
func (a *AST) IsValid() bool {
	if a == nil {
		return false
	}
	switch n := a.Root.(type) {
	case *Slot:
		return n != nil && n.ID != UnsetSlot
	case *Op:
		return n != nil && n.Symbol != "" && len(n.Children) > 0
	}
	return false
}

// Invalidate resets the root to an unset Slot.
func (a *AST) Invalidate() {
	a.Root = &Slot{ID: UnsetSlot}
}

// String renders the canonical formula for a, or "" if a is invalid.
func (a *AST) String() string {
	if !a.IsValid() {
		return ""
	}
	var b strings.Builder
	a.Root.render(&b)
	return b.String()
}

// Slots returns the sorted set of slot ids referenced anywhere in a.
func (a *AST) Slots() []uint32 {
	if a == nil || a.Root == nil {
		return nil
	}
	seen := map[uint32]struct{}{}
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Slot:
			if n.ID != UnsetSlot {
				seen[n.ID] = struct{}{}
			}
		case *Op:
			for _, child := range n.Children {
				walk(child)
			}
		}
	}
	walk(a.Root)
	if len(seen) == 0 {
		return nil
	}
	slots := make([]uint32, 0, len(seen))
	for id := range seen {
		slots = append(slots, id)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}
