package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/descriptor"
)

const (
	kindA descriptor.Kind = "testA"
	kindB descriptor.Kind = "testB"
	kindC descriptor.Kind = "testC"
)

type constDescriptor struct {
	kind      descriptor.Kind
	immutable bool
}

func (c constDescriptor) Kind() descriptor.Kind { return c.kind }
func (c constDescriptor) Immutable() bool       { return c.immutable }

func TestRun_StopsWhenNoResolverAccepts(t *testing.T) {
	reg := NewRegistry()
	steps, err := Run(context.Background(), reg, constDescriptor{kind: kindA}, true)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestRun_StopsOnDoesNotExist(t *testing.T) {
	r := &stubResolver{
		name:    "r",
		accepts: []descriptor.Kind{kindA},
		answer:  certainty.NewDoesNotExist(kindB, "nope"),
	}
	reg := NewRegistry(r)
	steps, err := Run(context.Background(), reg, constDescriptor{kind: kindA}, true)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, certainty.DoesNotExist, steps[0].Answer.Level)
}

func TestRun_StopsWhenNotRecursive(t *testing.T) {
	a := &stubResolver{
		name:    "a",
		accepts: []descriptor.Kind{kindA},
		answer:  certainty.NewMaybeExists(constDescriptor{kind: kindB}),
	}
	b := &stubResolver{
		name:    "b",
		accepts: []descriptor.Kind{kindB},
		answer:  certainty.NewExists(constDescriptor{kind: kindC}),
	}
	reg := NewRegistry(a, b)

	steps, err := Run(context.Background(), reg, constDescriptor{kind: kindA}, false)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "a", steps[0].Resolver)
}

func TestRun_ChainsThroughMultipleResolvers(t *testing.T) {
	a := &stubResolver{
		name:    "a",
		accepts: []descriptor.Kind{kindA},
		answer:  certainty.NewMaybeExists(constDescriptor{kind: kindB}),
	}
	b := &stubResolver{
		name:    "b",
		accepts: []descriptor.Kind{kindB},
		answer:  certainty.NewExists(constDescriptor{kind: kindC}),
	}
	reg := NewRegistry(a, b)

	steps, err := Run(context.Background(), reg, constDescriptor{kind: kindA}, true)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "a", steps[0].Resolver)
	assert.Equal(t, "b", steps[1].Resolver)
	assert.Equal(t, kindC, steps[1].Answer.Descriptor.Kind())
}

func TestRun_FirstNonNilWinsPerRound(t *testing.T) {
	declines := &stubResolver{name: "declines", accepts: []descriptor.Kind{kindA}, answer: nil}
	accepts := &stubResolver{
		name:    "accepts",
		accepts: []descriptor.Kind{kindA},
		answer:  certainty.NewMaybeExists(constDescriptor{kind: kindB}),
	}
	neverReached := &stubResolver{
		name:    "never",
		accepts: []descriptor.Kind{kindA},
		answer:  certainty.NewMaybeExists(constDescriptor{kind: kindC}),
	}
	reg := NewRegistry(declines, accepts, neverReached)

	steps, err := Run(context.Background(), reg, constDescriptor{kind: kindA}, true)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "accepts", steps[0].Resolver)
}

func TestRun_PropagatesError(t *testing.T) {
	boom := assert.AnError
	r := &stubResolver{name: "r", accepts: []descriptor.Kind{kindA}, err: boom}
	reg := NewRegistry(r)

	_, err := Run(context.Background(), reg, constDescriptor{kind: kindA}, true)
	assert.ErrorIs(t, err, boom)
}

// TestRun_TerminatesProperty checks the resolution-loop invariant that,
// for any chain of resolvers each yielding a distinct fresh descriptor
// kind, Run always terminates instead of looping forever, and always
// halts at (or before) the first DoesNotExist answer.
func TestRun_TerminatesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chainLen := rapid.IntRange(0, 8).Draw(t, "chainLen")
		doesNotExistAt := rapid.IntRange(-1, chainLen-1).Draw(t, "doesNotExistAt")

		// Each link in the chain gets its own synthetic kind so no two
		// resolvers ever compete for the same registry bucket.
		kinds := make([]descriptor.Kind, chainLen+1)
		for i := range kinds {
			kinds[i] = descriptor.Kind(rapid.StringMatching(`[a-zA-Z]{1,6}`).Draw(t, "kindPrefix") + "-" + string(rune('A'+i)))
		}

		resolvers := make([]Resolver, chainLen)
		for i := 0; i < chainLen; i++ {
			var answer *certainty.Answer
			if i == doesNotExistAt {
				answer = certainty.NewDoesNotExist(kinds[i+1], "synthetic")
			} else {
				answer = certainty.NewMaybeExists(constDescriptor{kind: kinds[i+1]})
			}
			resolvers[i] = &stubResolver{
				name:    string(kinds[i]),
				accepts: []descriptor.Kind{kinds[i]},
				answer:  answer,
			}
		}
		reg := NewRegistry(resolvers...)

		steps, err := Run(context.Background(), reg, constDescriptor{kind: kinds[0]}, true)
		require.NoError(t, err)

		if doesNotExistAt >= 0 {
			assert.Len(t, steps, doesNotExistAt+1)
			assert.Equal(t, certainty.DoesNotExist, steps[len(steps)-1].Answer.Level)
		} else {
			assert.Len(t, steps, chainLen)
		}
	})
}

// TestRun_OrderOfAnswersProperty checks that each step's answer descriptor
// is exactly the question the next resolver was invoked with — the
// registry lookup for step i+1 only ever sees step i's Descriptor.
func TestRun_OrderOfAnswersProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chainLen := rapid.IntRange(1, 8).Draw(t, "chainLen")

		kinds := make([]descriptor.Kind, chainLen+1)
		for i := range kinds {
			kinds[i] = descriptor.Kind(rapid.StringMatching(`[a-zA-Z]{1,6}`).Draw(t, "kindPrefix") + "-" + string(rune('A'+i)))
		}

		seenQuestions := make([]descriptor.Descriptor, chainLen)
		resolvers := make([]Resolver, chainLen)
		for i := 0; i < chainLen; i++ {
			i := i
			resolvers[i] = &recordingResolver{
				name:    string(kinds[i]),
				accepts: []descriptor.Kind{kinds[i]},
				answer:  certainty.NewMaybeExists(constDescriptor{kind: kinds[i+1]}),
				record:  &seenQuestions[i],
			}
		}
		reg := NewRegistry(resolvers...)

		steps, err := Run(context.Background(), reg, constDescriptor{kind: kinds[0]}, true)
		require.NoError(t, err)
		require.Len(t, steps, chainLen)

		for i := 0; i < chainLen; i++ {
			assert.Equal(t, kinds[i], seenQuestions[i].Kind(), "resolver %d was invoked with the wrong question", i)
			if i > 0 {
				assert.Equal(t, steps[i-1].Answer.Descriptor, seenQuestions[i], "step %d's question was not step %d's answer descriptor", i, i-1)
			}
		}
	})
}

// TestRun_IdempotenceProperty checks the fixed-point invariant: running
// the loop again starting from the final descriptor of a completed
// recursive resolution (one that did not end in DoesNotExist) produces no
// further answers, because no resolver in this synthetic registry accepts
// the terminal kind.
func TestRun_IdempotenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chainLen := rapid.IntRange(1, 8).Draw(t, "chainLen")

		kinds := make([]descriptor.Kind, chainLen+1)
		for i := range kinds {
			kinds[i] = descriptor.Kind(rapid.StringMatching(`[a-zA-Z]{1,6}`).Draw(t, "kindPrefix") + "-" + string(rune('A'+i)))
		}

		resolvers := make([]Resolver, chainLen)
		for i := 0; i < chainLen; i++ {
			resolvers[i] = &stubResolver{
				name:    string(kinds[i]),
				accepts: []descriptor.Kind{kinds[i]},
				answer:  certainty.NewMaybeExists(constDescriptor{kind: kinds[i+1]}),
			}
		}
		reg := NewRegistry(resolvers...)

		steps, err := Run(context.Background(), reg, constDescriptor{kind: kinds[0]}, true)
		require.NoError(t, err)
		require.Len(t, steps, chainLen)

		final := steps[len(steps)-1].Answer.Descriptor
		fixedPoint, err := Run(context.Background(), reg, final, true)
		require.NoError(t, err)
		assert.Empty(t, fixedPoint)
	})
}

// recordingResolver behaves like stubResolver but also captures the
// question it was last invoked with, for the order-of-answers property.
type recordingResolver struct {
	name    string
	accepts []descriptor.Kind
	answer  *certainty.Answer
	record  *descriptor.Descriptor
}

func (s *recordingResolver) Name() string              { return s.name }
func (s *recordingResolver) Accepts() []descriptor.Kind { return s.accepts }
func (s *recordingResolver) Resolve(_ context.Context, q descriptor.Descriptor) (*certainty.Answer, error) {
	*s.record = q
	return s.answer, nil
}
