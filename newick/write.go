package newick

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Writer writes trees in Newick format, one tree per line.
type Writer struct {
	// When set to true, the [&R] or [&U] comment is not written before
	// each tree. Trees with unknown rooting never get one.
	// This may be set at any time.
	OmitRooting bool

	buf *bufio.Writer
}

// NewWriter returns a writer that writes trees to `w`.
func NewWriter(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(w)}
}

// WriteTree writes a single tree followed by a terminal ';' and a new line.
func (w *Writer) WriteTree(t *Tree) error {
	b := new(bytes.Buffer)
	writeTree(b, t, !w.OmitRooting)
	b.WriteByte('\n')
	if _, err := w.buf.Write(b.Bytes()); err != nil {
		return err
	}
	return w.buf.Flush()
}

// WriteAll writes every tree in `trees`.
func (w *Writer) WriteAll(trees []*Tree) error {
	for _, t := range trees {
		if err := w.WriteTree(t); err != nil {
			return err
		}
	}
	return nil
}

// Newick returns the tree in Newick format, including its rooting comment
// and the terminal ';'.
func (t *Tree) Newick() string {
	b := new(bytes.Buffer)
	writeTree(b, t, true)
	return b.String()
}

func writeTree(b *bytes.Buffer, t *Tree, rooting bool) {
	if rooting {
		switch t.rooting {
		case Rooted:
			b.WriteString("[&R] ")
		case Unrooted:
			b.WriteString("[&U] ")
		}
	}
	if w, ok := t.Weight(); ok {
		b.WriteString("[&W ")
		b.WriteString(strconv.FormatFloat(w, 'g', -1, 64))
		b.WriteString("] ")
	}
	writeNode(b, t.root)
	b.WriteByte(terminal)
}

func writeNode(b *bytes.Buffer, root *Node) {
	type frame struct {
		n    *Node
		next int
	}
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := top.n
		if top.next < len(n.children) {
			if top.next == 0 {
				b.WriteByte(descStart)
			} else {
				b.WriteByte(descDelim)
			}
			c := n.children[top.next]
			top.next++
			stack = append(stack, frame{n: c})
			continue
		}
		if len(n.children) > 0 {
			b.WriteByte(descEnd)
		}
		b.WriteString(quoteLabel(n.label))
		if n.length != nil {
			b.WriteByte(lengthStart)
			b.WriteString(strconv.FormatFloat(*n.length, 'g', -1, 64))
		}
		stack = stack[:len(stack)-1]
	}
}

// quoteLabel quotes a label if it could not be read back as a single
// unquoted word.
func quoteLabel(label string) string {
	if len(label) == 0 {
		return label
	}
	if !strings.ContainsAny(label, wordBanned+" \t\r\n") &&
		!strings.EqualFold(label, headerMarker) {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}
