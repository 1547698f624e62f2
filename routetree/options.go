package routetree

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithRouter makes Build register into reg instead of creating a fresh
// router of its own. Several builders can share one registrar this way,
// each contributing a slice of the final route table.
func WithRouter(reg Registrar) Option {
	return func(b *Builder) {
		b.registrar = reg
	}
}
