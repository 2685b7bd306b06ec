package newick

import "fmt"

// Pos is a location in the source input. Offset is a 0-based byte offset,
// Line and Column are 1-based. Columns count bytes.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// LexError is returned for malformed tokens, such as an unterminated quoted
// label or comment.
type LexError struct {
	Pos Pos
	Msg string
}

func (e *LexError) Error() string {
	return errMsg(e.Pos, e.Msg)
}

// SyntaxError is returned when the tokens do not follow the grammar, e.g.
// unbalanced parentheses, an empty descendant list or a malformed branch
// length.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return errMsg(e.Pos, e.Msg)
}

// ReferenceError is returned when a leaf label cannot be resolved to a
// taxon.
type ReferenceError struct {
	Pos   Pos
	Label string
	Msg   string
}

func (e *ReferenceError) Error() string {
	return errMsg(e.Pos, e.Msg)
}

// SyntaxErrorf builds a *SyntaxError at pos.
func SyntaxErrorf(pos Pos, format string, v ...interface{}) error {
	return &SyntaxError{pos, fmt.Sprintf(format, v...)}
}

func errMsg(pos Pos, msg string) string {
	return fmt.Sprintf("Error on %s: %s", pos, msg)
}
