package routetree

import (
	"net/http"
	"slices"
	"strings"
)

// Middleware decorates an http.Handler with extra behavior. It is a type
// alias rather than a named type so that values flow between this package,
// the router package, and plain functions without conversion.
type Middleware = func(http.Handler) http.Handler

// methodOrder fixes the relative order in which verbs are flattened at a
// single level. Methods outside this list come afterwards, in the order
// they were first declared at that level.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// operation is a single verb declaration: the trailing path fragment, the
// terminal handler, and the middleware named on the call itself.
type operation struct {
	fragment   string
	handler    http.Handler
	middleware []Middleware
}

// node is one level of the path group tree. The fragment, middleware list,
// and parent are fixed when the level is created; children and operations
// accumulate while the caller keeps declaring and are consumed by Build.
type node struct {
	fragment   string
	middleware []Middleware
	parent     *node
	children   queue[*node]
	operations map[string]*queue[operation]
	extra      []string
	visited    bool
}

func newNode(parent *node, fragment string, middleware []Middleware) *node {
	return &node{
		fragment:   fragment,
		middleware: middleware,
		parent:     parent,
	}
}

// addOperation appends one verb declaration at this level. Non-standard
// methods are remembered in declaration order so flattening can reach them
// after the methods in methodOrder.
func (n *node) addOperation(method, fragment string, handler http.Handler, middleware []Middleware) {
	if n.operations == nil {
		n.operations = make(map[string]*queue[operation])
	}
	q, ok := n.operations[method]
	if !ok {
		q = &queue[operation]{}
		n.operations[method] = q
		if !slices.Contains(methodOrder, method) {
			n.extra = append(n.extra, method)
		}
	}
	q.push(operation{fragment: fragment, handler: handler, middleware: middleware})
}

// routePath joins every ancestor fragment from the root down to this level
// and appends the operation's own fragment. Fragments are concatenated
// exactly as declared: no separator is inserted and no slash normalization
// takes place, so each fragment carries its own leading slash.
func (n *node) routePath(fragment string) string {
	var fragments []string
	size := len(fragment)
	for cur := n; cur != nil; cur = cur.parent {
		fragments = append(fragments, cur.fragment)
		size += len(cur.fragment)
	}

	var b strings.Builder
	b.Grow(size)
	for i := len(fragments) - 1; i >= 0; i-- {
		b.WriteString(fragments[i])
	}
	b.WriteString(fragment)
	return b.String()
}

// inheritedMiddleware concatenates the middleware lists of every level from
// the root down to this one. The node lists themselves are never mutated;
// inheritance exists only in the returned slice.
func (n *node) inheritedMiddleware() []Middleware {
	total := 0
	for cur := n; cur != nil; cur = cur.parent {
		total += len(cur.middleware)
	}
	if total == 0 {
		return nil
	}

	chain := make([]Middleware, total)
	i := total
	for cur := n; cur != nil; cur = cur.parent {
		i -= len(cur.middleware)
		copy(chain[i:], cur.middleware)
	}
	return chain
}
