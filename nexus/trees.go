package nexus

import (
	"strconv"

	"github.com/TuftsBCB/phylo/newick"
)

// treesBlock is the state of a TREES block while it is being read.
type treesBlock struct {
	p            *parser
	block        *TreesBlock
	sawTranslate bool
}

func (p *parser) parseTrees(name newick.Token) error {
	b := &treesBlock{
		p: p,
		block: &TreesBlock{
			Translate: newTranslateTable(),
			Default:   -1,
		},
	}
	err := p.parseCommands(name, map[string]commandFn{
		"TRANSLATE": b.translate,
		"TREE":      b.tree,
		"UTREE":     b.tree,
	})
	if err != nil {
		return err
	}
	p.doc.TreesBlocks = append(p.doc.TreesBlocks, b.block)
	return nil
}

// tree reads `TREE [*] name = [&R|&U] [&W w] newick;`. UTREE trees are
// unrooted unless a comment says otherwise. The reader's rooting policy is
// applied last.
func (b *treesBlock) tree(cmd newick.Token) error {
	p := b.p
	tok, err := p.peek()
	if err != nil {
		return err
	}
	isDefault := tok.Kind == newick.TokenStar
	if isDefault {
		p.next()
	}

	name, err := p.next()
	if err != nil {
		return err
	}
	if !name.IsLabel() {
		return syntaxf(name.Pos, "Expected a tree name but got %s instead.", name)
	}
	if _, err := p.expect(newick.TokenEquals, "'=' after the tree name"); err != nil {
		return err
	}

	first, err := p.peek()
	if err != nil {
		return err
	}
	rooting := newick.RootingOf(first.Comments)
	if rooting == newick.RootingUnknown && isKeyword(cmd, "UTREE") {
		rooting = newick.Unrooted
	}
	rooting = p.rooting.Apply(rooting)

	root, err := newick.ParseSubtree(p.s, b.resolve)
	if err != nil {
		return err
	}
	if err := p.s.ExpectTerminal(); err != nil {
		return err
	}
	tree, err := newick.NewTree(name.Text, rooting, root)
	if err != nil {
		return err
	}
	if tree, err = newick.WeighTree(tree, first); err != nil {
		return err
	}

	if isDefault {
		b.block.Default = len(b.block.Trees)
	}
	b.block.Trees = append(b.block.Trees, tree)
	return nil
}

// resolve maps a leaf token to a taxon name. In order: a TRANSLATE key, a
// declared taxon name, a 1-based TAXLABELS index when there is no TRANSLATE
// table, and finally the label as written if no TAXA block constrains it.
func (b *treesBlock) resolve(tok newick.Token) (string, error) {
	taxa, table := b.p.doc.Taxa, b.block.Translate

	key, err := strconv.Atoi(tok.Text)
	isKey := err == nil && tok.Kind == newick.TokenNumber
	if isKey {
		if name, ok := table.Lookup(key); ok {
			return name, nil
		}
	}
	if _, ok := taxa.Index(tok.Text); ok {
		return tok.Text, nil
	}
	if isKey {
		if table.Len() > 0 {
			return "", &ReferenceError{
				Pos:   tok.Pos,
				Label: tok.Text,
				Msg:   "Translate key " + tok.Text + " is not defined.",
			}
		}
		if key >= 1 && key <= taxa.Len() {
			return taxa.Name(key - 1), nil
		}
	}
	if taxa.Len() > 0 && !b.p.allowUnknownTaxa {
		return "", &ReferenceError{
			Pos:   tok.Pos,
			Label: tok.Text,
			Msg:   "Taxon '" + tok.Text + "' is not declared in the TAXA block.",
		}
	}
	return tok.Text, nil
}
