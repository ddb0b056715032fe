package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrSyntax is wrapped by every SyntaxError.
var ErrSyntax = errors.New("selector syntax error")

// SyntaxError reports a malformed selector. Offset is the byte position
// within the selector text where parsing failed.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Unwrap lets errors.Is find ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Parse parses a single selector (no comma lists).
func Parse(text string) (Selector, error) {
	p := &parser{src: text}
	sel, err := p.parseSelector()
	if err != nil {
		return Selector{}, err
	}
	p.skipSpace()
	if !p.atEnd() {
		return Selector{}, p.errorf("unexpected %q", p.peek())
	}
	return sel, nil
}

// ParseGroup parses a comma-separated list of selectors, as found in the
// head of a stylesheet rule.
func ParseGroup(text string) ([]Selector, error) {
	var group []Selector
	p := &parser{src: text}
	for {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		group = append(group, sel)
		p.skipSpace()
		if p.atEnd() {
			return group, nil
		}
		if p.peek() != ',' {
			return nil, p.errorf("unexpected %q", p.peek())
		}
		p.pos++
	}
}

// MustParse is like Parse but panics on malformed input. It is intended
// for selector literals in code.
func MustParse(text string) Selector {
	sel, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return sel
}

type parser struct {
	src string
	pos int
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Offset: p.pos}
}

func (p *parser) skipSpace() bool {
	start := p.pos
	for !p.atEnd() && isSpace(p.src[p.pos]) {
		p.pos++
	}
	return p.pos > start
}

func (p *parser) parseSelector() (Selector, error) {
	var sel Selector
	p.skipSpace()
	for {
		part, err := p.parseCompound()
		if err != nil {
			return Selector{}, err
		}
		sel.Steps = append(sel.Steps, Step{Part: part})
		comb, err := p.parseCombinator()
		if err != nil {
			return Selector{}, err
		}
		if comb == None {
			return sel, nil
		}
		sel.Steps[len(sel.Steps)-1].Combinator = comb
	}
}

// parseCombinator returns None at the end of a selector.
func (p *parser) parseCombinator() (Combinator, error) {
	space := p.skipSpace()
	if p.atEnd() {
		return None, nil
	}
	var comb Combinator
	switch p.peek() {
	case '>':
		comb = Child
	case '+':
		comb = AdjacentSibling
	case '~':
		comb = GeneralSibling
	case ',', ')', '{':
		return None, nil
	default:
		if space {
			return Descendant, nil
		}
		return None, p.errorf("unexpected %q", p.peek())
	}
	p.pos++
	p.skipSpace()
	if p.atEnd() {
		return None, p.errorf("combinator without right-hand selector")
	}
	return comb, nil
}

func (p *parser) parseCompound() (Part, error) {
	var part Part
	start := p.pos
	if p.peek() == '*' {
		part.Universal = true
		p.pos++
	} else if isNameStart(p.peek()) {
		part.Element = strings.ToLower(p.parseName())
	}
	for !p.atEnd() {
		switch p.peek() {
		case '#':
			p.pos++
			id := p.parseName()
			if id == "" {
				return part, p.errorf("expected id after '#'")
			}
			if part.ID != "" && part.ID != id {
				return part, p.errorf("more than one id in selector")
			}
			part.ID = id
		case '.':
			p.pos++
			class := p.parseName()
			if class == "" {
				return part, p.errorf("expected class name after '.'")
			}
			part.Classes = append(part.Classes, class)
		case '[':
			am, err := p.parseAttribute()
			if err != nil {
				return part, err
			}
			part.Attributes = append(part.Attributes, am)
		case ':':
			pc, err := p.parsePseudo()
			if err != nil {
				return part, err
			}
			part.Pseudo = append(part.Pseudo, pc)
		default:
			if p.pos == start {
				return part, p.errorf("expected selector, have %q", p.peek())
			}
			return part, nil
		}
	}
	if p.pos == start {
		return part, p.errorf("empty selector")
	}
	return part, nil
}

func (p *parser) parseName() string {
	start := p.pos
	for !p.atEnd() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isNameRune(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

// [name], [name=value], [name op "value" i]
func (p *parser) parseAttribute() (AttrMatcher, error) {
	var am AttrMatcher
	p.pos++ // '['
	p.skipSpace()
	am.Name = strings.ToLower(p.parseName())
	if am.Name == "" {
		return am, p.errorf("expected attribute name")
	}
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return am, nil
	}
	switch {
	case strings.HasPrefix(p.src[p.pos:], "="):
		am.Op = AttrEquals
		p.pos++
	case len(p.src) >= p.pos+2 && p.src[p.pos+1] == '=':
		switch p.src[p.pos] {
		case '~':
			am.Op = AttrIncludes
		case '|':
			am.Op = AttrDashMatch
		case '^':
			am.Op = AttrPrefix
		case '$':
			am.Op = AttrSuffix
		case '*':
			am.Op = AttrSubstring
		default:
			return am, p.errorf("unknown attribute operator")
		}
		p.pos += 2
	default:
		return am, p.errorf("expected attribute operator or ']'")
	}
	p.skipSpace()
	switch p.peek() {
	case '"', '\'':
		v, err := p.parseString()
		if err != nil {
			return am, err
		}
		am.Value = v
	default:
		am.Value = p.parseName()
		if am.Value == "" {
			return am, p.errorf("expected attribute value")
		}
	}
	p.skipSpace()
	switch p.peek() {
	case 'i', 'I':
		am.CaseInsensitive = true
		p.pos++
	case 's', 'S':
		p.pos++
	}
	p.skipSpace()
	if p.peek() != ']' {
		return am, p.errorf("expected ']'")
	}
	p.pos++
	return am, nil
}

func (p *parser) parseString() (string, error) {
	quote := p.src[p.pos]
	start := p.pos
	p.pos++
	var b strings.Builder
	for !p.atEnd() {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case c == '\n':
			return "", &SyntaxError{Msg: "newline in string", Offset: p.pos}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", &SyntaxError{Msg: "unterminated string", Offset: start}
}

func (p *parser) parsePseudo() (PseudoClass, error) {
	p.pos++ // ':'
	if p.peek() == ':' {
		return PseudoClass{}, p.errorf("pseudo-elements are not supported")
	}
	start := p.pos
	name := strings.ToLower(p.parseName())
	if name == "" {
		return PseudoClass{}, p.errorf("expected pseudo-class name")
	}
	pc := PseudoClass{Name: name}
	if p.peek() != '(' {
		switch name {
		case "first-child":
			pc.Kind = PseudoFirstChild
		case "last-child":
			pc.Kind = PseudoLastChild
		case "only-child":
			pc.Kind = PseudoOnlyChild
		case "empty":
			pc.Kind = PseudoEmpty
		case "root":
			pc.Kind = PseudoRoot
		case "nth-child", "nth-last-child", "not":
			return pc, p.errorf(":%s needs an argument", name)
		default:
			pc.Kind = PseudoState
		}
		return pc, nil
	}
	p.pos++ // '('
	p.skipSpace()
	switch name {
	case "nth-child", "nth-last-child":
		pc.Kind = PseudoNthChild
		if name == "nth-last-child" {
			pc.Kind = PseudoNthLastChild
		}
		end := strings.IndexByte(p.src[p.pos:], ')')
		if end < 0 {
			return pc, p.errorf("expected ')'")
		}
		a, b, err := parseNth(p.src[p.pos : p.pos+end])
		if err != nil {
			return pc, &SyntaxError{Msg: err.Error(), Offset: p.pos}
		}
		pc.A, pc.B = a, b
		p.pos += end
	case "not":
		pc.Kind = PseudoNot
		inner, err := p.parseCompound()
		if err != nil {
			return pc, err
		}
		pc.Not = &inner
		p.skipSpace()
	default:
		return pc, &SyntaxError{Msg: fmt.Sprintf("unknown functional pseudo-class :%s()", name), Offset: start}
	}
	if p.peek() != ')' {
		return pc, p.errorf("expected ')'")
	}
	p.pos++
	return pc, nil
}

// parseNth parses the argument of :nth-child(): "odd", "even", "n", "3",
// "2n+1", "-n + 3".
func parseNth(arg string) (a, b int, err error) {
	s := strings.ToLower(strings.Join(strings.Fields(arg), ""))
	switch s {
	case "odd":
		return 2, 1, nil
	case "even":
		return 2, 0, nil
	case "":
		return 0, 0, errors.New("empty an+b expression")
	}
	n := strings.IndexByte(s, 'n')
	if n < 0 {
		b, err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed an+b expression %q", arg)
		}
		return 0, b, nil
	}
	switch coef := s[:n]; coef {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		if a, err = strconv.Atoi(coef); err != nil {
			return 0, 0, fmt.Errorf("malformed an+b expression %q", arg)
		}
	}
	if rest := s[n+1:]; rest != "" {
		if rest[0] != '+' && rest[0] != '-' {
			return 0, 0, fmt.Errorf("malformed an+b expression %q", arg)
		}
		if b, err = strconv.Atoi(rest); err != nil {
			return 0, 0, fmt.Errorf("malformed an+b expression %q", arg)
		}
	}
	return a, b, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || r >= utf8.RuneSelf
}

func isNameRune(r rune) bool {
	return isNameStart(r) || (r >= '0' && r <= '9')
}
