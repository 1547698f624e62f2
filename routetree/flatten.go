package routetree

import (
	"github.com/vitalvas/trellis/router"
)

// Build flattens every pending declaration into the Registrar and returns
// it. When no registrar was supplied via WithRouter, a fresh router.New()
// is created on first use and reused by later calls.
//
// Flattening starts at the cursor's current level, so the fluent style
// works without a trailing run of End calls. The walk consumes the tree:
// operations and child levels are popped, not iterated, and a second Build
// call finds nothing left to register and returns the router unchanged.
func (b *Builder) Build() Registrar {
	if b.registrar == nil {
		b.registrar = router.New()
	}

	for {
		b.current.drain(b.registrar)
		if child, ok := b.current.nextChild(); ok {
			b.current = child
			continue
		}
		b.current.visited = true
		if b.current.parent == nil {
			return b.registrar
		}
		b.current = b.current.parent
	}
}

// drain registers and removes every operation declared at this level.
// Verbs empty out in methodOrder first, then any remaining methods in the
// order they were first declared.
func (n *node) drain(reg Registrar) {
	if len(n.operations) == 0 {
		return
	}
	inherited := n.inheritedMiddleware()
	for _, method := range methodOrder {
		n.drainMethod(reg, method, inherited)
	}
	for _, method := range n.extra {
		n.drainMethod(reg, method, inherited)
	}
}

// drainMethod pops every operation queued under method and registers it at
// the composed path. The chain handed to the registrar is the inherited
// middleware of the enclosing levels followed by the middleware declared
// on the operation itself.
func (n *node) drainMethod(reg Registrar, method string, inherited []Middleware) {
	q, ok := n.operations[method]
	if !ok {
		return
	}
	for {
		op, ok := q.pop()
		if !ok {
			return
		}
		chain := make([]Middleware, 0, len(inherited)+len(op.middleware))
		chain = append(chain, inherited...)
		chain = append(chain, op.middleware...)
		reg.Register(method, n.routePath(op.fragment), op.handler, chain...)
	}
}

// nextChild pops children until one that has not been flattened yet comes
// up. The walk ascends through levels it already descended from, so a
// level that entered the tree as the cursor position can turn up visited
// in its parent's queue later; those are discarded.
func (n *node) nextChild() (*node, bool) {
	for {
		child, ok := n.children.pop()
		if !ok {
			return nil, false
		}
		if !child.visited {
			return child, true
		}
	}
}
