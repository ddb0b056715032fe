package cssom

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrorCode classifies problems found in stylesheets.
type ErrorCode int

// Error codes. They are displayed as "E001" etc.
const (
	NoError             ErrorCode = iota
	EUnterminated                 // E001 unterminated block or comment
	EInvalidSelector              // E002
	EUnknownProperty              // E003
	EInvalidValue                 // E004
	EInvalidColor                 // E005
	EUndefinedVariable            // E006
	EMalformedDecl                // E007 malformed declaration
	EInvalidGrid                  // E008 invalid grid template
	EUnexpectedBrace              // E009 unexpected '}'
	EUnsupportedAtRule            // E010
)

func (c ErrorCode) String() string {
	return fmt.Sprintf("E%03d", int(c))
}

// Text returns a short description of an error code.
func (c ErrorCode) Text() string {
	switch c {
	case NoError:
		return "OK"
	case EUnterminated:
		return "unterminated block or comment"
	case EInvalidSelector:
		return "invalid selector"
	case EUnknownProperty:
		return "unknown property"
	case EInvalidValue:
		return "invalid value"
	case EInvalidColor:
		return "invalid color"
	case EUndefinedVariable:
		return "undefined variable"
	case EMalformedDecl:
		return "malformed declaration"
	case EInvalidGrid:
		return "invalid grid template"
	case EUnexpectedBrace:
		return "unexpected '}'"
	case EUnsupportedAtRule:
		return "unsupported at-rule"
	}
	return "undefined error"
}

// ParseError is returned by Parse for stylesheets which cannot be parsed.
// Position is the byte offset in the source where parsing failed.
type ParseError struct {
	Code     ErrorCode
	Message  string
	Position int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%s] %s at position %d", e.Code, e.Message, e.Position)
}

// Code returns the error code associated with an error.
// If err is nil, NoError is returned. Errors without a code report
// EInvalidValue.
func Code(err error) ErrorCode {
	if err == nil {
		return NoError
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return EInvalidValue
}

// Severity of a diagnostic.
type Severity uint8

// Severities. Errors prevent a stylesheet from being parsed, warnings
// report declarations which will be ignored.
const (
	Error Severity = iota
	Warning
	Hint
)

func (s Severity) String() string {
	return [...]string{"error", "warning", "hint"}[s%3]
}

// SourceLocation is a position in a stylesheet. Lines and columns start
// at 1, columns count runes.
type SourceLocation struct {
	Offset int
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Locate computes line and column for a byte offset in src.
func Locate(src string, offset int) SourceLocation {
	if offset < 0 {
		offset = 0
	} else if offset > len(src) {
		offset = len(src)
	}
	loc := SourceLocation{Offset: offset, Line: 1}
	lineStart := 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			loc.Line++
			lineStart = i + 1
		}
	}
	loc.Column = utf8.RuneCountInString(src[lineStart:offset]) + 1
	return loc
}

// Diagnostic is a problem found in a stylesheet.
type Diagnostic struct {
	Code       ErrorCode
	Severity   Severity
	Message    string
	Location   SourceLocation
	Suggestion string // optional, e.g. the property name probably meant
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s %s: %s", d.Location, d.Severity, d.Code, d.Message)
	if d.Suggestion != "" {
		s += fmt.Sprintf(" (did you mean %q?)", d.Suggestion)
	}
	return s
}
