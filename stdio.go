// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
)

// Root is a node to export together with the label of its anchor, usually the
// name of the function it denotes.
type Root struct {
	Node  Node
	Label string
}

// ******************************************************************************************************

// Print returns a one-line description of node n.
func (b *Session) Print(n Node) string {
	if err := b.checkptr(n); err != nil {
		return fmt.Sprintf("Error (%s)", err)
	}
	if n.id == 0 {
		return "False"
	}
	if n.id == 1 {
		return "True"
	}
	v := b.nodes[n.id]
	return fmt.Sprintf("(%d[%s] ? %d : %d)", n.id, b.varnames[v.level], v.low, v.high)
}

// PrintTable writes a textual representation of the nodes reachable from the
// roots n..., or of all the nodes in b if n is absent, one node per line.
func (b *Session) PrintTable(w io.Writer, n ...Node) error {
	for _, v := range n {
		if err := b.checkptr(v); err != nil {
			return fmt.Errorf("wrong node in call to PrintTable: %w", err)
		}
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	err := b.Allnodes(func(id, level, low, high int) error {
		if id < 2 {
			_, err := fmt.Fprintf(tw, "%d\t[%s]\n", id, strconv.FormatBool(id == 1))
			return err
		}
		_, err := fmt.Fprintf(tw, "%d\t[%s]\t? %d\t: %d\n", id, b.varnames[level], low, high)
		return err
	}, n...)
	if err != nil {
		return fmt.Errorf("print table: %w: %w", ErrIOFailure, err)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("print table: %w: %w", ErrIOFailure, err)
	}
	return nil
}

// ******************************************************************************************************

// Export writes a graph-like description of the diagrams with the given roots
// using the DOT format. Every node reachable from one of the roots is written
// exactly once, with an arc labeled "0" to its low branch and an arc labeled
// "1" to its high branch. Nodes are named after their index in the table.
// Constants are drawn as boxes. Each root is pointed to by an anchor vertex
// carrying its label, so that several functions can share the same drawing.
func (b *Session) Export(w io.Writer, roots ...Root) error {
	if len(roots) == 0 {
		return b.seterror(ErrEmptyInput, "no roots in call to Export")
	}
	nodes := make([]Node, len(roots))
	for k, r := range roots {
		if err := b.checkptr(r.Node); err != nil {
			return fmt.Errorf("wrong root %q in call to Export: %w", r.Label, err)
		}
		nodes[k] = r.Node
	}
	bw := bufio.NewWriter(w)
	b.print_dot(bw, roots, nodes)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: %w: %w", ErrIOFailure, err)
	}
	return nil
}

// ExportFile is like Export but writes to the file called filename, which is
// created or truncated. We use the standard output if filename is "-".
func (b *Session) ExportFile(filename string, roots ...Root) error {
	if filename == "-" {
		return b.Export(os.Stdout, roots...)
	}
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("export: %w: %w", ErrIOFailure, err)
	}
	if err := b.Export(out, roots...); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("export: %w: %w", ErrIOFailure, err)
	}
	return nil
}

// print_dot writes the DOT description of the nodes reachable from nodes. The
// writer is buffered and keeps the first error, which is reported by Flush.
func (b *Session) print_dot(w *bufio.Writer, roots []Root, nodes []Node) {
	fmt.Fprintln(w, "digraph BDD {")
	// the callback never fails, so neither does Allnodes
	_ = b.Allnodes(func(id, level, low, high int) error {
		if id < 2 {
			fmt.Fprintf(w, "\tn%d [label=\"%d\", shape=box];\n", id, id)
			return nil
		}
		fmt.Fprintf(w, "\tn%d [label=%s];\n", id, strconv.Quote(b.varnames[level]))
		fmt.Fprintf(w, "\tn%d -> n%d [label=\"0\"];\n", id, low)
		fmt.Fprintf(w, "\tn%d -> n%d [label=\"1\"];\n", id, high)
		return nil
	}, nodes...)
	for k, r := range roots {
		fmt.Fprintf(w, "\tr%d [label=%s, shape=plaintext];\n", k, strconv.Quote(r.Label))
		fmt.Fprintf(w, "\tr%d -> n%d;\n", k, r.Node.id)
	}
	fmt.Fprintln(w, "}")
}
