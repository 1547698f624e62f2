// Package routetree implements a declarative builder that turns a nested
// description of HTTP path groups, verbs, and middleware into a flat set
// of route registrations on a router.
//
// Declarations accumulate in a tree: each Group call opens a level that
// contributes a path fragment and a middleware list, and each verb call
// queues an operation at the current level. Build then walks the tree
// once and registers every operation with its full path and its complete
// middleware chain.
//
// The package provides:
//   - A fluent style (Group / End) and a scoped callback style (Route)
//     that interleave freely
//   - Middleware inheritance from enclosing groups, applied before the
//     middleware declared on the operation itself
//   - Deterministic registration order following declaration order
//   - Registration into the bundled router by default, or into any
//     router wrapped as a Registrar
//
// # Fluent Style
//
// Group moves the cursor into a new level and End moves it back out:
//
//	b := routetree.New()
//	b.Group("/api/v1", auth).
//		Get("/status", status).
//		Group("/users").
//		Get("", listUsers).
//		Post("", createUser).
//		End().
//		Get("/ping", ping)
//	r := b.Build()
//
// Trailing End calls may be omitted: Build starts flattening at the
// cursor's current level and walks the whole tree from there.
//
// # Scoped Style
//
// Route opens a level, hands the cursor to a callback, and restores it
// afterwards, so nesting follows the block structure of the code:
//
//	b := routetree.New()
//	b.Route("/api/v1", func(b *routetree.Builder) {
//		b.Get("/status", status)
//		b.Route("/users", func(b *routetree.Builder) {
//			b.Get("", listUsers)
//			b.Get("/{id:uuid}", findUser)
//		}, auth)
//	})
//	r := b.Build()
//
// # Path Composition
//
// The full path of an operation is the concatenation of every enclosing
// group fragment, root first, followed by the operation's own fragment.
// Nothing is inserted between fragments and no slash cleanup is applied,
// so each fragment must carry its own leading slash. An empty fragment is
// valid at any position and contributes no path text, which is the usual
// way to bind a verb to the group path itself.
//
// # Middleware Chains
//
// The chain registered for an operation is the concatenation of every
// enclosing group's middleware list, root first, followed by the
// middleware declared on the operation call. Group middleware is never
// copied into child levels; chains are composed fresh during Build.
//
// # Single Use
//
// Build consumes the tree. Operations and child levels are drained as the
// walk passes through them, so a second Build finds nothing left and
// simply returns the same router. Declarations made after a Build are not
// lost; they queue up for the next one. A Builder is not safe for
// concurrent use.
package routetree
