package routetree

import (
	"net/http"
	"strings"
)

// Registrar is the single capability the builder needs from a router:
// record a handler chain for a method and path. The router package
// implements it, and so does any third-party router wrapped by the
// adapter package.
type Registrar interface {
	Register(method, path string, handler http.Handler, middleware ...Middleware)
}

// Builder assembles a tree of path groups and verb declarations and
// flattens it into a Registrar in one shot. Declarations are collected
// relative to a cursor that Group moves down and End moves up:
//
//	b := routetree.New()
//	b.Group("/api/v1", auth).
//		Get("/users", listUsers).
//		Group("/users/{id:int}").
//		Get("", findUser).
//		Del("", removeUser)
//	r := b.Build()
//
// The same tree can be written with scoped callbacks via Route, and the
// two styles interleave freely. A Builder is not safe for concurrent use
// and is single-shot: Build consumes the declarations it registers.
type Builder struct {
	registrar Registrar
	root      *node
	current   *node
}

// New returns an empty Builder positioned at the root level. By default
// Build registers into a fresh router.New(); pass WithRouter to target an
// existing one instead.
func New(opts ...Option) *Builder {
	root := newNode(nil, "", nil)
	b := &Builder{root: root, current: root}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Group opens a child level under the current one and moves the cursor
// into it. The fragment may be empty, in which case the level contributes
// no path text but its middleware still wraps everything declared below.
// Call End to return to the enclosing level.
func (b *Builder) Group(fragment string, middleware ...Middleware) *Builder {
	child := newNode(b.current, fragment, middleware)
	b.current.children.push(child)
	b.current = child
	return b
}

// Route is the scoped form of Group: it opens a child level, invokes fn
// with the cursor positioned there, and restores the cursor to where it
// was before the call on every exit path, including a panic inside fn.
// A nil fn declares an empty level.
func (b *Builder) Route(fragment string, fn func(*Builder), middleware ...Middleware) *Builder {
	restore := b.current
	defer func() { b.current = restore }()

	b.Group(fragment, middleware...)
	if fn != nil {
		fn(b)
	}
	return b
}

// End moves the cursor back to the enclosing level. At the root level it
// does nothing.
func (b *Builder) End() *Builder {
	if b.current.parent != nil {
		b.current = b.current.parent
	}
	return b
}

// Method declares handler for an arbitrary HTTP method at the current
// level. The method name is uppercased. The fragment is appended to the
// path accumulated by the enclosing groups and may be empty, which binds
// the operation to the group path itself.
func (b *Builder) Method(method, fragment string, handler http.Handler, middleware ...Middleware) *Builder {
	b.current.addOperation(strings.ToUpper(method), fragment, handler, middleware)
	return b
}

// Get declares a GET operation at the current level.
func (b *Builder) Get(fragment string, handler http.HandlerFunc, middleware ...Middleware) *Builder {
	return b.Method(http.MethodGet, fragment, handler, middleware...)
}

// Post declares a POST operation at the current level.
func (b *Builder) Post(fragment string, handler http.HandlerFunc, middleware ...Middleware) *Builder {
	return b.Method(http.MethodPost, fragment, handler, middleware...)
}

// Put declares a PUT operation at the current level.
func (b *Builder) Put(fragment string, handler http.HandlerFunc, middleware ...Middleware) *Builder {
	return b.Method(http.MethodPut, fragment, handler, middleware...)
}

// Patch declares a PATCH operation at the current level.
func (b *Builder) Patch(fragment string, handler http.HandlerFunc, middleware ...Middleware) *Builder {
	return b.Method(http.MethodPatch, fragment, handler, middleware...)
}

// Delete declares a DELETE operation at the current level.
func (b *Builder) Delete(fragment string, handler http.HandlerFunc, middleware ...Middleware) *Builder {
	return b.Method(http.MethodDelete, fragment, handler, middleware...)
}

// Del is shorthand for Delete.
func (b *Builder) Del(fragment string, handler http.HandlerFunc, middleware ...Middleware) *Builder {
	return b.Delete(fragment, handler, middleware...)
}

// Head declares a HEAD operation at the current level.
func (b *Builder) Head(fragment string, handler http.HandlerFunc, middleware ...Middleware) *Builder {
	return b.Method(http.MethodHead, fragment, handler, middleware...)
}

// Options declares an OPTIONS operation at the current level.
func (b *Builder) Options(fragment string, handler http.HandlerFunc, middleware ...Middleware) *Builder {
	return b.Method(http.MethodOptions, fragment, handler, middleware...)
}
