package nexus

import (
	"iter"
	"strconv"

	"github.com/TuftsBCB/phylo/newick"
)

// TaxonRegistry is the ordered list of distinct taxon names declared by
// TAXLABELS. Indices are 0-based.
type TaxonRegistry struct {
	names []string
	index map[string]int
}

func newTaxonRegistry() *TaxonRegistry {
	return &TaxonRegistry{index: make(map[string]int)}
}

// add appends `name` and returns false if it was already present.
func (r *TaxonRegistry) add(name string) bool {
	if _, ok := r.index[name]; ok {
		return false
	}
	r.index[name] = len(r.names)
	r.names = append(r.names, name)
	return true
}

// Len returns the number of taxa.
func (r *TaxonRegistry) Len() int {
	return len(r.names)
}

// Name returns the i'th taxon name.
func (r *TaxonRegistry) Name(i int) string {
	return r.names[i]
}

// Index returns the position of `name` in declaration order.
func (r *TaxonRegistry) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Names returns a copy of all names in declaration order.
func (r *TaxonRegistry) Names() []string {
	return append([]string(nil), r.names...)
}

// All returns each index and name in declaration order.
func (r *TaxonRegistry) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, name := range r.names {
			if !yield(i, name) {
				return
			}
		}
	}
}

// taxaBlock is the state of a TAXA block while it is being read.
type taxaBlock struct {
	p        *parser
	ntax     int // -1 until DIMENSIONS is read
	labels   bool
	registry *TaxonRegistry
}

func (p *parser) parseTaxa(name newick.Token) error {
	if p.sawTaxa {
		return invalidf(name.Pos, "Only one TAXA block is allowed.")
	}
	p.sawTaxa = true

	b := &taxaBlock{p: p, ntax: -1, registry: newTaxonRegistry()}
	err := p.parseCommands(name, map[string]commandFn{
		"DIMENSIONS": b.dimensions,
		"TAXLABELS":  b.taxlabels,
	})
	if err != nil {
		return err
	}
	if b.ntax < 0 {
		return invalidf(name.Pos, "TAXA block has no DIMENSIONS NTAX=n.")
	}
	if !b.labels && b.ntax > 0 {
		return invalidf(name.Pos,
			"TAXA block declares NTAX=%d but has no TAXLABELS.", b.ntax)
	}
	p.doc.Taxa = b.registry
	return nil
}

// dimensions reads `DIMENSIONS NTAX = n;`. Other subcommands are skipped.
func (b *taxaBlock) dimensions(cmd newick.Token) error {
	if b.ntax >= 0 {
		return invalidf(cmd.Pos, "Duplicate DIMENSIONS command.")
	}
	p := b.p
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch {
		case tok.Kind == newick.TokenSemicolon:
			if b.ntax < 0 {
				return invalidf(cmd.Pos, "DIMENSIONS is missing NTAX.")
			}
			return nil
		case tok.Kind == newick.TokenEOF:
			return syntaxf(cmd.Pos, "Command '%s' is missing its ';'.", cmd.Text)
		case tok.Kind != newick.TokenWord:
			return syntaxf(tok.Pos,
				"Expected a DIMENSIONS subcommand but got %s instead.", tok)
		}

		if _, err := p.expect(newick.TokenEquals, "'='"); err != nil {
			return err
		}
		val, err := p.next()
		if err != nil {
			return err
		}
		if !val.IsLabel() {
			return syntaxf(val.Pos, "Expected a value for %s but got %s instead.",
				tok.Text, val)
		}
		if !isKeyword(tok, "NTAX") {
			continue
		}
		n, err := strconv.Atoi(val.Text)
		if err != nil || n < 0 || val.Kind != newick.TokenNumber {
			return invalidf(val.Pos,
				"NTAX must be a non-negative integer but got %s.", val)
		}
		b.ntax = n
	}
}

// taxlabels reads the taxon names up to ';'. Names may be separated by
// whitespace or commas.
func (b *taxaBlock) taxlabels(cmd newick.Token) error {
	if b.labels {
		return invalidf(cmd.Pos, "Duplicate TAXLABELS command.")
	}
	if b.ntax < 0 {
		return invalidf(cmd.Pos, "TAXLABELS must follow DIMENSIONS NTAX=n.")
	}
	b.labels = true

	p := b.p
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch {
		case tok.Kind == newick.TokenSemicolon:
			if b.registry.Len() != b.ntax {
				return invalidf(cmd.Pos,
					"TAXLABELS lists %d taxa but NTAX=%d.",
					b.registry.Len(), b.ntax)
			}
			return nil
		case tok.Kind == newick.TokenComma:
		case tok.Kind == newick.TokenEOF:
			return syntaxf(cmd.Pos, "Command '%s' is missing its ';'.", cmd.Text)
		case tok.IsLabel():
			if !b.registry.add(tok.Text) {
				return invalidf(tok.Pos, "Duplicate taxon label '%s'.", tok.Text)
			}
		default:
			return syntaxf(tok.Pos,
				"Expected a taxon label but got %s instead.", tok)
		}
	}
}
