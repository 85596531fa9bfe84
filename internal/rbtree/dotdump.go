package rbtree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// recordEscaper escapes characters that are special inside a quoted
// record label.
var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
	"\n", `\n`,
)

// Dotdump writes the tree as a graphviz digraph. Edges take the color of
// the child they point to.
func (t *Tree[K, V]) Dotdump(w io.Writer) error {
	buf := bufio.NewWriter(w)
	fmt.Fprintln(buf, "digraph rbtree {")
	fmt.Fprintln(buf, "  node[shape=record];")
	for n := range t.Nodes() {
		key := fmt.Sprint(n.key)
		fmt.Fprintf(buf, "  %q [label=\"{%s}\", color=%v];\n", key, recordEscaper.Replace(key), n.color)
		for _, child := range []*Node[K, V]{n.left, n.right} {
			if child == t.bst.nilNode {
				continue
			}
			fmt.Fprintf(buf, "  %q -> %q [color=%v];\n", key, fmt.Sprint(child.key), child.color)
		}
	}
	fmt.Fprintln(buf, "}")
	return buf.Flush()
}
