package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes n as an indented tree, one node per line. Tokens are followed by
// their value when they have one.
func Fprint(w io.Writer, n Node) error {
	return fprint(w, n, "", true)
}

// Sprint returns the tree Fprint would write.
func Sprint(n Node) string {
	var b strings.Builder
	_ = Fprint(&b, n)
	return b.String()
}

func fprint(w io.Writer, n Node, indent string, isLast bool) error {
	marker := "├───"
	childIndent := indent + "│   "
	if isLast {
		marker = "└───"
		childIndent = indent + "    "
	}

	line := indent + marker + n.Kind().String()
	if tok, ok := n.(Token); ok && tok.Value() != nil {
		line += fmt.Sprintf(" %v", tok.Value())
	}
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}

	children := n.Children()
	for i, child := range children {
		if err := fprint(w, child, childIndent, i == len(children)-1); err != nil {
			return err
		}
	}
	return nil
}
