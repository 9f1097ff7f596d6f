package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// checkWith implements spec §4.3.9: every named context must be a declared
// context record or the built-in Arena. Each declared name is pushed onto
// the context stack for the body's scope; an undeclared name is reported and
// not pushed. On exit the stack is truncated by exactly the number of names
// that were pushed.
func (c *Checker) checkWith(n *ast.With) typesystem.Type {
	pushed := 0
	for _, name := range n.Contexts {
		if !c.Table.IsDeclaredContext(name) {
			c.report(diagnostics.TUnavailableContext, n.Span(), "undeclared context %q", name)
			continue
		}
		c.contextStack = append(c.contextStack, name)
		pushed++
	}
	result := c.checkBlock(n.Body)
	c.contextStack = c.contextStack[:len(c.contextStack)-pushed]
	return result
}
