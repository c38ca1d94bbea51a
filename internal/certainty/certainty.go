// Package certainty models the ternary outcome of a resolver step.
//
// A resolver either declines to recognize its input (represented by a nil
// *Answer, meaning "try the next resolver") or returns an Answer carrying
// one of three certainty levels. DoesNotExist is a value, never an error:
// the resolution loop treats it as a normal terminal state.
package certainty

import "github.com/reporef/reporef/internal/descriptor"

// Level is the three-valued existence certainty a resolver attaches to an
// answer.
type Level string

const (
	// Exists means the resolver affirmatively confirmed the referent via
	// a verifying side effect (a successful network status, an
	// ls-remote that resolved the ref, etc.).
	Exists Level = "Exists"
	// MaybeExists means the resolver parsed the input into a descriptor
	// but did not, or could not cheaply, confirm existence.
	MaybeExists Level = "MaybeExists"
	// DoesNotExist means the resolver recognized the input and proved
	// the referent absent. Recursion halts here.
	DoesNotExist Level = "DoesNotExist"
)

// Answer is the non-null result of a resolver step.
type Answer struct {
	Level Level

	// Descriptor is populated for Exists and MaybeExists; it is the
	// next question fed back into the loop on recursion.
	Descriptor descriptor.Descriptor

	// NotFoundKind and Message are populated for DoesNotExist: Kind
	// names the descriptor variant that was being sought, Message is a
	// human-readable explanation.
	NotFoundKind descriptor.Kind
	Message      string
}

// NewExists wraps d as a confirmed answer.
func NewExists(d descriptor.Descriptor) *Answer {
	return &Answer{Level: Exists, Descriptor: d}
}

// NewMaybeExists wraps d as an unconfirmed answer.
func NewMaybeExists(d descriptor.Descriptor) *Answer {
	return &Answer{Level: MaybeExists, Descriptor: d}
}

// NewDoesNotExist builds a disproof answer for the descriptor variant
// `kind`, the variant that was being sought when the referent was found
// absent.
func NewDoesNotExist(kind descriptor.Kind, message string) *Answer {
	return &Answer{Level: DoesNotExist, NotFoundKind: kind, Message: message}
}
