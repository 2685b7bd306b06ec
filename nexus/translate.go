package nexus

import (
	"iter"
	"strconv"

	"github.com/TuftsBCB/phylo/newick"
)

// TranslateTable maps the integer keys of a TRANSLATE command to taxon
// names. Keys need not be contiguous or start at 1.
type TranslateTable struct {
	keys  []int
	names map[int]string
}

func newTranslateTable() *TranslateTable {
	return &TranslateTable{names: make(map[int]string)}
}

// Len returns the number of entries.
func (t *TranslateTable) Len() int {
	return len(t.keys)
}

// Lookup returns the taxon name for `key`.
func (t *TranslateTable) Lookup(key int) (string, bool) {
	name, ok := t.names[key]
	return name, ok
}

// Keys returns a copy of the keys in the order they were written.
func (t *TranslateTable) Keys() []int {
	return append([]int(nil), t.keys...)
}

// All returns each key and name in the order they were written.
func (t *TranslateTable) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for _, k := range t.keys {
			if !yield(k, t.names[k]) {
				return
			}
		}
	}
}

// translate reads `TRANSLATE key name, key name, ... ;` into the table of
// the TREES block. A trailing comma before ';' is allowed.
func (b *treesBlock) translate(cmd newick.Token) error {
	if b.sawTranslate {
		return invalidf(cmd.Pos, "Duplicate TRANSLATE command.")
	}
	if len(b.block.Trees) > 0 {
		return invalidf(cmd.Pos, "TRANSLATE must come before the first TREE.")
	}
	b.sawTranslate = true

	p, table := b.p, b.block.Translate
	for {
		keyTok, err := p.next()
		if err != nil {
			return err
		}
		switch {
		case keyTok.Kind == newick.TokenSemicolon:
			return nil
		case keyTok.Kind == newick.TokenEOF:
			return syntaxf(cmd.Pos, "Command '%s' is missing its ';'.", cmd.Text)
		}
		key, err := strconv.Atoi(keyTok.Text)
		if err != nil || keyTok.Kind != newick.TokenNumber {
			return invalidf(keyTok.Pos,
				"Translate key must be an integer but got %s.", keyTok)
		}

		nameTok, err := p.next()
		if err != nil {
			return err
		}
		if !nameTok.IsLabel() {
			return invalidf(nameTok.Pos,
				"Translate key %d is missing a taxon name; got %s instead.",
				key, nameTok)
		}
		if _, ok := table.names[key]; ok {
			return invalidf(keyTok.Pos, "Duplicate translate key %d.", key)
		}
		taxa := p.doc.Taxa
		if _, ok := taxa.Index(nameTok.Text); !ok &&
			taxa.Len() > 0 && !p.allowUnknownTaxa {
			return invalidf(nameTok.Pos,
				"Translate key %d maps to '%s', which is not a declared taxon.",
				key, nameTok.Text)
		}
		table.keys = append(table.keys, key)
		table.names[key] = nameTok.Text

		sep, err := p.next()
		if err != nil {
			return err
		}
		switch sep.Kind {
		case newick.TokenComma:
		case newick.TokenSemicolon:
			return nil
		default:
			return syntaxf(sep.Pos,
				"Expected ',' or ';' in TRANSLATE but got %s instead.", sep)
		}
	}
}
