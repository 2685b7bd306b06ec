package nexus

import (
	"bytes"
	"io"

	"github.com/TuftsBCB/phylo/newick"
)

// Document is everything read from a NEXUS file.
type Document struct {
	// The taxa declared in the TAXA block. It is empty, never nil, when the
	// file has no TAXA block.
	Taxa *TaxonRegistry

	// One entry per TREES block, in file order.
	TreesBlocks []*TreesBlock

	// The names of the blocks that were skipped, as written.
	Skipped []string
}

// TreesBlock holds the trees of a single TREES block along with the
// translation table used to resolve their leaves.
type TreesBlock struct {
	Translate *TranslateTable
	Trees     []*newick.Tree

	// The index in Trees of the tree marked with '*', or -1.
	Default int
}

// Trees returns the trees of every TREES block in file order.
func (doc *Document) Trees() []*newick.Tree {
	var trees []*newick.Tree
	for _, b := range doc.TreesBlocks {
		trees = append(trees, b.Trees...)
	}
	return trees
}

// Tree returns the first tree named `name`.
func (doc *Document) Tree(name string) (*newick.Tree, bool) {
	for _, b := range doc.TreesBlocks {
		for _, t := range b.Trees {
			if t.Name() == name {
				return t, true
			}
		}
	}
	return nil, false
}

// Reader reads a NEXUS document.
type Reader struct {
	// When set to true, leaf labels that are not declared in the TAXA block
	// are kept as written instead of failing with a ReferenceError, and
	// TRANSLATE entries may name undeclared taxa.
	// This may be set at any time before Read.
	AllowUnknownTaxa bool

	// Rooting decides the rooting of each tree read. The zero value keeps
	// the [&R] or [&U] comment of each tree, with UTREE trees unrooted.
	// This may be set at any time before Read.
	Rooting newick.RootingPolicy

	r io.Reader
}

// NewReader returns a reader ready for reading a document from `r`.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read reads the complete input and parses it. Either a complete document
// or an error is returned, never both.
func (r *Reader) Read() (*Document, error) {
	src, err := io.ReadAll(r.r)
	if err != nil {
		return nil, err
	}
	p := &parser{
		s:                newick.NewScanner(src),
		allowUnknownTaxa: r.AllowUnknownTaxa,
		rooting:          r.Rooting,
		doc:              &Document{Taxa: newTaxonRegistry()},
	}
	p.s.Reserve("BEGIN", "END", "ENDBLOCK")
	if err := p.parseDocument(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// Parse parses a complete NEXUS document held in memory.
func Parse(src []byte) (*Document, error) {
	return NewReader(bytes.NewReader(src)).Read()
}
