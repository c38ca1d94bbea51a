package resolve

import "github.com/reporef/reporef/internal/descriptor"

// Registry maps a descriptor variant to its ordered list of applicable
// resolvers (§4.1). Built once at process start and read-only thereafter.
type Registry struct {
	byKind map[descriptor.Kind][]Resolver
}

// NewRegistry builds a Registry from resolvers, preserving the order each
// resolver was declared in within every variant it accepts — that order
// is "most specific before most general" and is load-bearing (invariant
// 3, §3.3).
func NewRegistry(resolvers ...Resolver) *Registry {
	r := &Registry{byKind: make(map[descriptor.Kind][]Resolver)}
	for _, res := range resolvers {
		for _, k := range res.Accepts() {
			r.byKind[k] = append(r.byKind[k], res)
		}
	}
	return r
}

// For returns the ordered resolver list declared for kind, or nil if no
// resolver accepts it.
func (r *Registry) For(kind descriptor.Kind) []Resolver {
	return r.byKind[kind]
}
