package nexus

import (
	"strings"

	"github.com/TuftsBCB/phylo/newick"
)

type parser struct {
	s                *newick.Scanner
	doc              *Document
	allowUnknownTaxa bool
	rooting          newick.RootingPolicy
	sawTaxa          bool
}

func (p *parser) next() (newick.Token, error) {
	return p.s.Next()
}

func (p *parser) peek() (newick.Token, error) {
	return p.s.Peek()
}

// expect consumes the next token and fails unless it is of kind `kind`.
func (p *parser) expect(kind newick.TokenKind, what string) (newick.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, syntaxf(tok.Pos, "Expected %s but got %s instead.", what, tok)
	}
	return tok, nil
}

// isKeyword reports whether `tok` is the unquoted word `kw`, ignoring case.
func isKeyword(tok newick.Token, kw string) bool {
	return tok.Kind == newick.TokenWord && strings.EqualFold(tok.Text, kw)
}

func isEnd(tok newick.Token) bool {
	return isKeyword(tok, "END") || isKeyword(tok, "ENDBLOCK")
}

// parseDocument reads the #NEXUS header followed by any number of blocks.
func (p *parser) parseDocument() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != newick.TokenHeader {
		return syntaxf(tok.Pos, "Expected '#NEXUS' but got %s instead.", tok)
	}

	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind == newick.TokenEOF {
			return nil
		}
		if !isKeyword(tok, "BEGIN") {
			return syntaxf(tok.Pos, "Expected 'BEGIN' but got %s instead.", tok)
		}

		name, err := p.next()
		if err != nil {
			return err
		}
		if name.Kind != newick.TokenWord {
			return syntaxf(name.Pos,
				"Expected a block name after 'BEGIN' but got %s instead.", name)
		}
		if _, err := p.expect(newick.TokenSemicolon,
			"';' after the block name"); err != nil {
			return err
		}

		switch strings.ToUpper(name.Text) {
		case "TAXA":
			err = p.parseTaxa(name)
		case "TREES":
			err = p.parseTrees(name)
		default:
			err = p.skipBlock(name)
			p.doc.Skipped = append(p.doc.Skipped, name.Text)
		}
		if err != nil {
			return err
		}
	}
}

// skipBlock discards every token up to and including the next END; of a
// block this package does not read.
func (p *parser) skipBlock(name newick.Token) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind == newick.TokenEOF {
			return missingEnd(name)
		}
		if !isEnd(tok) {
			continue
		}
		if next, err := p.peek(); err != nil {
			return err
		} else if next.Kind == newick.TokenSemicolon {
			p.next()
			return nil
		}
	}
}

// commandFn reads the remainder of the command started by `cmd`, including
// its terminating ';'.
type commandFn func(cmd newick.Token) error

// parseCommands reads the commands of a block until its END;. Commands that
// are not in `commands` (keyed by upper case name) are skipped.
func (p *parser) parseCommands(name newick.Token, commands map[string]commandFn) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch {
		case tok.Kind == newick.TokenEOF:
			return missingEnd(name)
		case isEnd(tok):
			if _, err := p.expect(newick.TokenSemicolon,
				"';' after '"+tok.Text+"'"); err != nil {
				return err
			}
			return nil
		case tok.Kind == newick.TokenSemicolon:
			// empty command
		case tok.Kind != newick.TokenWord:
			return syntaxf(tok.Pos, "Expected a command but got %s instead.", tok)
		default:
			fn, ok := commands[strings.ToUpper(tok.Text)]
			if !ok {
				fn = p.skipCommand
			}
			if err := fn(tok); err != nil {
				return err
			}
		}
	}
}

// skipCommand discards the tokens of a command up to and including its ';'.
func (p *parser) skipCommand(cmd newick.Token) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case newick.TokenSemicolon:
			return nil
		case newick.TokenEOF:
			return syntaxf(cmd.Pos, "Command '%s' is missing its ';'.", cmd.Text)
		}
	}
}

func missingEnd(name newick.Token) error {
	return syntaxf(name.Pos, "Block '%s' is missing 'END;'.", name.Text)
}
