package resolve

import (
	"context"
	"log/slog"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
)

// Step pairs an answer with the resolver that produced it, so a --debug
// caller can report which resolver accepted each question (SPEC_FULL §12
// supplemented feature).
type Step struct {
	Answer   *certainty.Answer
	Resolver string
}

// Run drives the resolution loop (§4.2) starting from question, an
// already-parsed descriptor (RawURL for a bare user string). It returns
// the ordered list of steps taken.
func Run(ctx context.Context, registry *Registry, question descriptor.Descriptor, recursive bool) ([]Step, error) {
	var steps []Step

	for {
		candidates := registry.For(question.Kind())
		if len(candidates) == 0 {
			return steps, nil
		}

		var (
			answer       *certainty.Answer
			resolverName string
		)
		for _, r := range candidates {
			a, err := r.Resolve(ctx, question)
			if err != nil {
				return steps, err
			}
			if a != nil {
				answer = a
				resolverName = r.Name()
				break
			}
		}

		if answer == nil {
			return steps, nil
		}

		slog.Debug("resolved", "resolver", resolverName, "certainty", answer.Level, "kind", question.Kind())
		steps = append(steps, Step{Answer: answer, Resolver: resolverName})

		if !recursive {
			return steps, nil
		}
		if answer.Level == certainty.DoesNotExist {
			return steps, nil
		}

		question = answer.Descriptor
	}
}

// ParseQuestion wraps a raw user-supplied string as a RawURL descriptor,
// step (1) of the resolution loop algorithm.
func ParseQuestion(raw string) (descriptor.Descriptor, error) {
	u, err := descriptor.ParseURL(raw)
	if err != nil {
		return nil, err
	}
	return descriptor.RawURL{URL: u}, nil
}
