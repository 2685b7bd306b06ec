package nexus

import (
	"fmt"

	"github.com/TuftsBCB/phylo/newick"
)

// These are the error types shared with the newick package, so that callers
// can match every error of a parse against one package.
type (
	Pos            = newick.Pos
	LexError       = newick.LexError
	SyntaxError    = newick.SyntaxError
	ReferenceError = newick.ReferenceError
)

// ValidationError is returned when a document is well formed but its
// declarations disagree, e.g. NTAX does not match the number of TAXLABELS or
// a taxon or TRANSLATE key is declared twice.
type ValidationError struct {
	Pos Pos
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Error on %s: %s", e.Pos, e.Msg)
}

func invalidf(pos Pos, format string, v ...interface{}) error {
	return &ValidationError{pos, fmt.Sprintf(format, v...)}
}

func syntaxf(pos Pos, format string, v ...interface{}) error {
	return newick.SyntaxErrorf(pos, format, v...)
}
