package formula

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError is returned when a formula does not match the grammar, or
// matches only a prefix of it.
type ParseError struct {
	Formula string
	// Offset is the byte position at which the parser gave up.
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse formula %q at offset %d", e.Formula, e.Offset)
}

// Parse parses formula into a new AST. On failure the returned AST is in
// the invalidated state.
func Parse(formula string) (*AST, error) {
	a := &AST{}
	if err := a.Parse(formula); err != nil {
		return a, err
	}
	return a, nil
}

// Parse replaces the receiver's tree with the parse of formula. The whole
// input must be consumed; on failure the receiver is invalidated.
//
//	node      := op | slot
//	op        := ("and"|"or"|"xor"|"not") '(' node (',' node)* ')'
//	slot      := '[' uint ']' | uint
func (a *AST) Parse(formula string) error {
	p := parser{input: formula}
	p.skipSpace()
	root, ok := p.node()
	if ok {
		p.skipSpace()
		ok = p.pos == len(p.input)
	}
	if !ok {
		a.Invalidate()
		return &ParseError{Formula: formula, Offset: p.pos}
	}
	a.Root = root
	return nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) expect(c byte) bool {
	p.skipSpace()
	if p.peek() != c {
		return false
	}
	p.pos++
	return true
}

func (p *parser) node() (Node, bool) {
	p.skipSpace()
	c := p.peek()
	switch {
	case c == '[':
		p.pos++
		id, ok := p.uint()
		if !ok || !p.expect(']') {
			return nil, false
		}
		return &Slot{ID: id}, true
	case isDigit(c):
		id, ok := p.uint()
		if !ok {
			return nil, false
		}
		return &Slot{ID: id}, true
	case isLetter(c):
		return p.op()
	}
	return nil, false
}

func (p *parser) op() (Node, bool) {
	start := p.pos
	for isLetter(p.peek()) {
		p.pos++
	}
	symbol := strings.ToLower(p.input[start:p.pos])
	switch symbol {
	case SymbolAnd, SymbolOr, SymbolXor, SymbolNot:
	default:
		p.pos = start
		return nil, false
	}
	if !p.expect('(') {
		return nil, false
	}
	op := &Op{Symbol: symbol}
	for {
		child, ok := p.node()
		if !ok {
			return nil, false
		}
		op.Children = append(op.Children, child)
		if p.expect(',') {
			continue
		}
		if p.expect(')') {
			return op, true
		}
		return nil, false
	}
}

func (p *parser) uint() (uint32, bool) {
	p.skipSpace()
	start := p.pos
	for isDigit(p.peek()) {
		p.pos++
	}
	if start == p.pos {
		return 0, false
	}
	id, err := strconv.ParseUint(p.input[start:p.pos], 10, 32)
	if err != nil || uint32(id) == UnsetSlot {
		p.pos = start
		return 0, false
	}
	return uint32(id), true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
