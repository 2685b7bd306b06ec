/*
Package newick provides facilities for reading and writing trees in the
Newick format. The format used is roughly equivalent to the conventions
established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html.
Quoted labels (with '' as an escaped quote) and nestable bracketed comments
are supported. A leading [&R] or [&U] comment sets the rooting of a tree.

The lexical scanner in this package understands the conventions shared by
Newick and NEXUS files, so the nexus package drives it directly when it
reads TREE statements.

Trees are immutable once built. Traversals are exposed as iterators and never
recurse, so arbitrarily deep trees can be read, walked and written.
*/
package newick
