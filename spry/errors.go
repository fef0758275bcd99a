package spry

import (
	"fmt"
	"strings"
)

// IllegalCharError is raised by the lexer at the first unrecognized character.
type IllegalCharError struct {
	Char  rune
	Start Position
	End   Position
}

func (e *IllegalCharError) Error() string {
	return formatDiagnostic("Illegal Character", string(e.Char), e.Start, e.End)
}

// InvalidSyntaxError is raised by the parser at the first violated grammar rule.
type InvalidSyntaxError struct {
	Message string
	Start   Position
	End     Position
}

func (e *InvalidSyntaxError) Error() string {
	return formatDiagnostic("Invalid Syntax", e.Message, e.Start, e.End)
}

// RuntimeErrorKind names the subdivision of runtime failures.
type RuntimeErrorKind string

const (
	ErrUndefinedVariable RuntimeErrorKind = "Undefined Variable"
	ErrDivisionByZero    RuntimeErrorKind = "Division By Zero"
	ErrIllegalOperation  RuntimeErrorKind = "Illegal Operation"
	ErrArityMismatch     RuntimeErrorKind = "Arity Mismatch"
)

// RuntimeError carries the originating span and the context chain at the
// moment of failure, so Error can render a full traceback.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Start   Position
	End     Position
	Context *Context
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.traceback())
	b.WriteString(formatDiagnostic(string(e.Kind), e.Message, e.Start, e.End))
	return b.String()
}

// traceback renders one line per context frame, innermost frame first. Each
// frame after the first is positioned at the call site that entered its child.
func (e *RuntimeError) traceback() string {
	var b strings.Builder
	pos := e.Start
	ctx := e.Context
	for ctx != nil {
		fmt.Fprintf(&b, "\tFile: '%s' row(%d), col(%d), in %s\n", pos.SourceName, pos.Row, pos.Col+1, ctx.Name)
		if ctx.ParentEntryPos != nil {
			pos = *ctx.ParentEntryPos
		}
		ctx = ctx.Parent
	}
	return b.String()
}

func formatDiagnostic(kind, message string, start, end Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: '%s'\n", kind, message)
	fmt.Fprintf(&b, "\tFile: '%s' row(%d), col(%d)\n\n", start.SourceName, start.Row, start.Col+1)
	b.WriteString(underlineSpan(start.SourceText, start, end))
	return b.String()
}

// underlineSpan prints the offending source lines with a caret run aligned to
// the span's columns, one line of carets per source row the span touches.
func underlineSpan(source string, start, end Position) string {
	lines := strings.Split(source, "\n")
	if start.Row < 1 || start.Row > len(lines) {
		return ""
	}

	lastRow := end.Row
	if lastRow > len(lines) {
		lastRow = len(lines)
	}
	if lastRow < start.Row {
		lastRow = start.Row
	}

	var b strings.Builder
	for row := start.Row; row <= lastRow; row++ {
		line := lines[row-1]
		runes := []rune(line)

		colStart := 0
		if row == start.Row {
			colStart = start.Col
		}
		colEnd := len(runes)
		if row == lastRow && row == end.Row {
			colEnd = end.Col
		}
		if colStart > len(runes) {
			colStart = len(runes)
		}
		if colEnd <= colStart {
			colEnd = colStart + 1
		}

		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", colStart))
		b.WriteString(strings.Repeat("^", colEnd-colStart))
		if row != lastRow {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
