/*
Package nexus reads the TAXA and TREES blocks of NEXUS files, the block
structured format used by PAUP*, MrBayes, BEAST and Mesquite for systematic
data. An informal description of the format can be found in Maddison,
Swofford and Maddison (1997), "NEXUS: An extensible file format for
systematic information", Systematic Biology 46(4).

A file must start with #NEXUS. Blocks other than TAXA and TREES (for example
DATA, CHARACTERS or ASSUMPTIONS) are skipped, as are commands this package
does not know inside TAXA and TREES blocks.

Leaves in TREE statements are resolved through the TRANSLATE table of their
TREES block. Without a TRANSLATE entry, an integer leaf k refers to the k'th
taxon in TAXLABELS, and any other leaf must be a declared taxon name. Trees
are returned as newick.Tree values.

Reading is all or nothing: the first error aborts the whole document.
*/
package nexus
