package cssom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/cellstyle/dom/style/selector"
)

// Parse parses a stylesheet.
//
// Syntax errors which leave the structure of the stylesheet unclear
// (unterminated blocks or comments, unexpected braces, malformed selectors)
// are returned as a *ParseError. Malformed declarations and at-rules are
// skipped.
func Parse(src string) (*Stylesheet, error) {
	sheet, issues, err := parse(src)
	for _, d := range issues {
		tracer().Debugf("stylesheet: %s at position %d", d.Message, d.Location.Offset)
	}
	return sheet, err
}

// parse returns non-fatal issues together with the stylesheet, for use by
// Check. Issues carry byte offsets only.
func parse(src string) (*Stylesheet, []Diagnostic, error) {
	blanked, err := blankComments(src)
	if err != nil {
		return nil, nil, err
	}
	p := &sheetParser{src: blanked, sheet: NewStylesheet()}
	for {
		p.skipSpace()
		if p.atEnd() {
			break
		}
		switch p.src[p.pos] {
		case '}':
			err = p.fail(EUnexpectedBrace, p.pos, "unexpected '}'")
		case '@':
			err = p.skipAtRule()
		default:
			err = p.parseRule()
		}
		if err != nil {
			return nil, p.issues, err
		}
	}
	return p.sheet, p.issues, nil
}

type sheetParser struct {
	src    string // source with comments blanked out
	pos    int
	sheet  *Stylesheet
	issues []Diagnostic
}

func (p *sheetParser) atEnd() bool {
	return p.pos >= len(p.src)
}

func (p *sheetParser) skipSpace() {
	for !p.atEnd() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *sheetParser) fail(code ErrorCode, pos int, format string, args ...interface{}) error {
	return &ParseError{Code: code, Message: fmt.Sprintf(format, args...), Position: pos}
}

func (p *sheetParser) issue(code ErrorCode, sev Severity, pos int, format string, args ...interface{}) {
	p.issues = append(p.issues, Diagnostic{
		Code:     code,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Location: SourceLocation{Offset: pos},
	})
}

func (p *sheetParser) parseRule() error {
	start := p.pos
	open := indexTopLevel(p.src, start, "{};")
	if open < 0 {
		return p.fail(EUnterminated, start, "rule without declaration block")
	}
	switch p.src[open] {
	case '}':
		return p.fail(EUnexpectedBrace, open, "unexpected '}'")
	case ';':
		return p.fail(EInvalidSelector, open, "unexpected ';' in selector")
	}
	prelude := p.src[start:open]
	group, err := selector.ParseGroup(prelude)
	if err != nil {
		var se *selector.SyntaxError
		if errors.As(err, &se) {
			return p.fail(EInvalidSelector, start+se.Offset, "invalid selector %q: %s", strings.TrimSpace(prelude), se.Msg)
		}
		return p.fail(EInvalidSelector, start, "invalid selector %q", strings.TrimSpace(prelude))
	}
	closing := indexTopLevel(p.src, open+1, "{}")
	if closing < 0 {
		return p.fail(EUnterminated, open, "unterminated block")
	}
	if p.src[closing] == '{' {
		return p.fail(EUnterminated, closing, "unexpected '{' in block (missing '}'?)")
	}
	p.pos = closing + 1
	rule := &Rule{
		Prelude:      strings.TrimSpace(prelude),
		Selectors:    group,
		Declarations: p.parseDeclarations(open+1, closing),
		Offset:       start,
	}
	if isRootPrelude(rule.Prelude) {
		decls := rule.Declarations[:0]
		for _, d := range rule.Declarations {
			if d.IsCustom() {
				p.sheet.Variables[d.Property] = d.Value
				continue
			}
			decls = append(decls, d)
		}
		rule.Declarations = decls
		if len(decls) == 0 {
			return nil
		}
	}
	rule.Index = len(p.sheet.Rules)
	p.sheet.Rules = append(p.sheet.Rules, rule)
	return nil
}

func isRootPrelude(prelude string) bool {
	return strings.EqualFold(prelude, ":root")
}

// parseDeclarations parses the body of a block, src[from:to].
func (p *sheetParser) parseDeclarations(from, to int) []Declaration {
	var decls []Declaration
	body := p.src[:to]
	for pos := from; pos < to; {
		end := indexTopLevel(body, pos, ";")
		if end < 0 {
			end = to
		}
		if d, ok := p.parseDeclaration(pos, end); ok {
			decls = append(decls, d)
		}
		pos = end + 1
	}
	return decls
}

func (p *sheetParser) parseDeclaration(from, to int) (Declaration, bool) {
	seg := p.src[from:to]
	trimmed := strings.TrimLeft(seg, " \t\n\r\f")
	if strings.TrimSpace(trimmed) == "" {
		return Declaration{}, false
	}
	offset := from + len(seg) - len(trimmed)
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		p.issue(EMalformedDecl, Warning, offset, "declaration %q without ':'", strings.TrimSpace(trimmed))
		return Declaration{}, false
	}
	name := strings.TrimSpace(trimmed[:colon])
	if name == "" || strings.ContainsAny(name, " \t\n\r\f") {
		p.issue(EMalformedDecl, Warning, offset, "malformed property name %q", name)
		return Declaration{}, false
	}
	if !strings.HasPrefix(name, "--") {
		name = strings.ToLower(name)
	}
	value, important := splitImportant(strings.TrimSpace(trimmed[colon+1:]))
	if value == "" && !strings.HasPrefix(name, "--") {
		p.issue(EMalformedDecl, Warning, offset, "empty value for %s", name)
		return Declaration{}, false
	}
	return Declaration{Property: name, Value: value, Important: important, Offset: offset}, true
}

func splitImportant(v string) (string, bool) {
	i := strings.LastIndexByte(v, '!')
	if i < 0 || !strings.EqualFold(strings.TrimSpace(v[i+1:]), "important") {
		return v, false
	}
	return strings.TrimSpace(v[:i]), true
}

// skipAtRule skips `@name …;` and `@name … { … }`.
func (p *sheetParser) skipAtRule() error {
	start := p.pos
	name := p.src[start:]
	if i := strings.IndexAny(name, " \t\n\r\f;{}("); i > 0 {
		name = name[:i]
	}
	end := indexTopLevel(p.src, start, ";{}")
	if end < 0 {
		return p.fail(EUnterminated, start, "unterminated at-rule %s", name)
	}
	switch p.src[end] {
	case '}':
		return p.fail(EUnexpectedBrace, end, "unexpected '}'")
	case '{':
		closing, ok := matchBrace(p.src, end)
		if !ok {
			return p.fail(EUnterminated, end, "unterminated block of %s", name)
		}
		end = closing
	}
	p.pos = end + 1
	tracer().Infof("stylesheet: skipping unsupported at-rule %s", name)
	p.issue(EUnsupportedAtRule, Warning, start, "at-rule %s is not supported and will be ignored", name)
	return nil
}

// --- Scanning helpers ------------------------------------------------------

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// blankComments replaces comments by spaces, keeping newlines, so that
// byte offsets into the result are valid for the original source.
func blankComments(src string) (string, error) {
	b := []byte(src)
	var quote byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote || c == '\n' {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(b) && b[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return "", &ParseError{Code: EUnterminated, Message: "unterminated comment", Position: i}
			}
			end += i + 4
			for j := i; j < end; j++ {
				if b[j] != '\n' {
					b[j] = ' '
				}
			}
			i = end - 1
		}
	}
	return string(b), nil
}

// indexTopLevel returns the index of the first byte of stops in s[from:],
// skipping quoted strings. Stops other than braces have to be outside of
// parentheses. Returns -1 if no stop is found.
func indexTopLevel(s string, from int, stops string) int {
	var quote byte
	depth := 0
	for i := from; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
			continue
		case '(':
			depth++
			continue
		case ')':
			if depth > 0 {
				depth--
				continue
			}
		}
		if strings.IndexByte(stops, c) >= 0 && (depth == 0 || c == '{' || c == '}') {
			return i
		}
	}
	return -1
}

// matchBrace returns the index of the '}' closing the '{' at s[open],
// allowing nested blocks.
func matchBrace(s string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(s); {
		j := indexTopLevel(s, i, "{}")
		if j < 0 {
			return -1, false
		}
		if s[j] == '{' {
			depth++
		} else {
			depth--
			if depth == 0 {
				return j, true
			}
		}
		i = j + 1
	}
	return -1, false
}
