// Package resolve implements the dispatch registry and resolution loop
// (spec §4.1, §4.2) plus every provider resolver (§4.3, §4.4).
package resolve

import (
	"context"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
)

// Resolver is one step of the pipeline: given a descriptor of a variant it
// declared via Accepts, it either declines (nil answer, nil error) or
// returns an Answer. A non-nil error is reserved for genuinely
// exceptional conditions (§7 item 3/4) — "I don't recognize this" and
// "this doesn't exist" are both represented by the return value, never by
// error.
type Resolver interface {
	// Name identifies the resolver for --debug logging.
	Name() string
	// Accepts returns the descriptor variants this resolver declares
	// itself applicable to. Declared statically, never derived by
	// runtime reflection (§9 "Polymorphism and registry construction").
	Accepts() []descriptor.Kind
	// Resolve inspects d and returns an answer, or nil if this resolver
	// does not recognize d.
	Resolve(ctx context.Context, d descriptor.Descriptor) (*certainty.Answer, error)
}
