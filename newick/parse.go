package newick

import (
	"io"
	"strconv"
)

// Resolver maps the token of a leaf label to the label stored on the leaf.
// The nexus package uses it to resolve TRANSLATE keys to taxon names.
type Resolver func(tok Token) (string, error)

// Literal is a Resolver that keeps leaf labels as written.
func Literal(tok Token) (string, error) {
	return tok.Text, nil
}

// Reader corresponds to the state necessary to read trees from Newick
// formatted input.
type Reader struct {
	// Resolve maps leaf labels. It defaults to Literal and may be set at any
	// time.
	Resolve Resolver

	// Rooting decides the rooting of each tree read. The zero value keeps
	// the [&R] or [&U] comment of each tree. This may be set at any time.
	Rooting RootingPolicy

	s   *Scanner
	err error
}

// NewReader returns a reader ready for reading trees from `r`. The input is
// read in full before the first tree is parsed.
func NewReader(r io.Reader) *Reader {
	src, err := io.ReadAll(r)
	return &Reader{s: NewScanner(src), err: err}
}

// ReadAll returns all of the Newick trees in the source input. The first
// error that occurs is returned with no trees. The error is never `io.EOF`.
func (r *Reader) ReadAll() ([]*Tree, error) {
	trees := make([]*Tree, 0)
	for {
		tree, err := r.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// ReadTree reads a single tree from the source input. If the end of the
// input is reached, then a nil `Tree` is returned with `io.EOF` as the error.
func (r *Reader) ReadTree() (*Tree, error) {
	if r.err != nil {
		return nil, r.err
	}
	first, err := r.s.Peek()
	if err != nil {
		return nil, err
	}
	if first.Kind == TokenEOF {
		return nil, io.EOF
	}

	root, err := ParseSubtree(r.s, r.Resolve)
	if err != nil {
		return nil, err
	}
	if err := r.s.ExpectTerminal(); err != nil {
		return nil, err
	}
	tree := &Tree{rooting: r.Rooting.Apply(RootingOf(first.Comments)), root: root}
	return WeighTree(tree, first)
}

// WeighTree attaches the weight given in the comments before `first`, the
// first token of the tree, to `tree`. An invalid weight is a SyntaxError at
// `first`.
func WeighTree(tree *Tree, first Token) (*Tree, error) {
	w, ok, err := WeightOf(first.Comments)
	if err != nil {
		return nil, &SyntaxError{Pos: first.Pos, Msg: err.Error()}
	}
	if !ok {
		return tree, nil
	}
	return tree.WithWeight(w), nil
}

// Parse reads exactly one tree from `src`.
func Parse(src string) (*Tree, error) {
	r := &Reader{s: NewScanner([]byte(src))}
	tree, err := r.ReadTree()
	if err == io.EOF {
		return nil, SyntaxErrorf(Pos{Line: 1, Column: 1}, "Empty input.")
	} else if err != nil {
		return nil, err
	}
	tok, err := r.s.Next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenEOF {
		return nil, SyntaxErrorf(tok.Pos, "Unexpected %s after the tree.", tok)
	}
	return tree, nil
}

// ParseSubtree reads one Newick expression from `s`: either a leaf or a
// parenthesized descendant list, each optionally followed by a label and a
// ':'-prefixed branch length. The terminating ';' is left unread.
//
// Leaf labels are passed through `resolve`; internal node labels are kept as
// written. A nil `resolve` means Literal.
//
// Parsing uses an explicit stack, so nesting depth is bounded only by memory.
func ParseSubtree(s *Scanner, resolve Resolver) (*Node, error) {
	if resolve == nil {
		resolve = Literal
	}

	// Descendant lists that are still open, and where they were opened.
	var open []*Node
	var openPos []Pos

SUBTREE:
	for {
		tok, err := s.Peek()
		if err != nil {
			return nil, err
		}

		var n *Node
		switch {
		case tok.Kind == TokenLParen:
			s.Next()
			next, err := s.Peek()
			if err != nil {
				return nil, err
			}
			if next.Kind == TokenRParen {
				return nil, SyntaxErrorf(tok.Pos, "Empty descendant list '()'.")
			}
			open = append(open, &Node{})
			openPos = append(openPos, tok.Pos)
			continue SUBTREE
		case tok.IsLabel():
			s.Next()
			label, err := resolve(tok)
			if err != nil {
				return nil, err
			}
			n = &Node{label: label}
		case len(open) > 0 && (tok.Kind == TokenComma ||
			tok.Kind == TokenRParen || tok.Kind == TokenColon):
			// An unlabeled leaf, as in "(,)" or "(:0.1,:0.2)".
			n = &Node{}
		case len(open) > 0 && (tok.Kind == TokenEOF || tok.Kind == TokenSemicolon):
			return nil, unbalanced(openPos[len(openPos)-1])
		default:
			return nil, SyntaxErrorf(tok.Pos,
				"Expected a descendant list or a subtree but got %s instead.", tok)
		}
		if err := parseLength(s, n); err != nil {
			return nil, err
		}

		// The subtree `n` is complete. Attach it to the innermost open list
		// and close as many lists as the input closes.
		for {
			if len(open) == 0 {
				return n, nil
			}
			parent := open[len(open)-1]
			parent.children = append(parent.children, n)

			tok, err := s.Next()
			if err != nil {
				return nil, err
			}
			switch tok.Kind {
			case TokenComma:
				continue SUBTREE
			case TokenRParen:
				open = open[:len(open)-1]
				openPos = openPos[:len(openPos)-1]
				n = parent
				if err := parseLabel(s, n); err != nil {
					return nil, err
				}
				if err := parseLength(s, n); err != nil {
					return nil, err
				}
			case TokenEOF, TokenSemicolon:
				return nil, unbalanced(openPos[len(openPos)-1])
			default:
				return nil, SyntaxErrorf(tok.Pos,
					"Expected '%c' or '%c' but got %s instead.",
					descDelim, descEnd, tok)
			}
		}
	}
}

// parseLabel reads the optional label that follows a closing parenthesis.
// Reserved words are left for the caller.
func parseLabel(s *Scanner, n *Node) error {
	tok, err := s.Peek()
	if err != nil {
		return err
	}
	if tok.IsLabel() && !s.isReserved(tok) {
		s.Next()
		n.label = tok.Text
	}
	return nil
}

// parseLength reads an optional ':' followed by a branch length. Negative
// lengths are accepted.
func parseLength(s *Scanner, n *Node) error {
	tok, err := s.Peek()
	if err != nil {
		return err
	}
	if tok.Kind != TokenColon {
		return nil
	}
	s.Next()

	tok, err = s.Next()
	if err != nil {
		return err
	}
	if tok.Kind != TokenNumber {
		return SyntaxErrorf(tok.Pos,
			"Expected a branch length after '%c' but got %s instead.",
			lengthStart, tok)
	}
	length, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return SyntaxErrorf(tok.Pos, "Invalid branch length: %s", err)
	}
	n.length = &length
	return nil
}

func unbalanced(pos Pos) error {
	return SyntaxErrorf(pos, "Unbalanced parentheses: '%c' is never closed.",
		descStart)
}
