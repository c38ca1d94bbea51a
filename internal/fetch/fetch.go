// Package fetch implements spec §4.5: materializing a resolved descriptor
// into a directory on disk. Fetching is deliberately separate from
// resolving (package resolve) — a Fetcher never narrows a descriptor, it
// only downloads what one already fully identifies.
package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/reporef/reporef/internal/descriptor"
	"github.com/reporef/reporef/internal/rerrors"
)

// Fetcher materializes one descriptor Kind into outputDir. outputDir is
// guaranteed to exist and be empty by the time Fetch is called (see
// PrepareOutputDir). Fetch is not transactional: a failure partway through
// may leave partial content in outputDir, matching the original system's
// own behavior (§4.5 "non-transactional on failure").
type Fetcher interface {
	// Accepts lists the descriptor kinds this Fetcher knows how to
	// materialize.
	Accepts() []descriptor.Kind
	// Fetch writes d's content into outputDir.
	Fetch(ctx context.Context, d descriptor.Descriptor, outputDir string) error
}

// Dispatcher routes a descriptor to the Fetcher registered for its Kind.
type Dispatcher struct {
	byKind map[descriptor.Kind]Fetcher
}

// NewDispatcher builds a Dispatcher from every given Fetcher. A later
// Fetcher registered for a Kind already claimed by an earlier one
// overwrites it — callers are expected to register each Kind once.
func NewDispatcher(fetchers ...Fetcher) *Dispatcher {
	d := &Dispatcher{byKind: make(map[descriptor.Kind]Fetcher)}
	for _, f := range fetchers {
		for _, k := range f.Accepts() {
			d.byKind[k] = f
		}
	}
	return d
}

// For returns the Fetcher registered for kind, or nil if none is.
func (d *Dispatcher) For(kind descriptor.Kind) Fetcher {
	return d.byKind[kind]
}

// Fetch prepares outputDir and dispatches to the Fetcher registered for
// desc's Kind. It returns a *rerrors.Error (validation category) if no
// Fetcher is registered — a descriptor reaching fetch that no resolver
// chain could narrow further than this is an unresolvable input, not a
// fetcher bug.
func (d *Dispatcher) Fetch(ctx context.Context, desc descriptor.Descriptor, outputDir string) error {
	f := d.For(desc.Kind())
	if f == nil {
		return rerrors.New(rerrors.CategoryValidation, fmt.Sprintf("no fetcher registered for %s", desc.Kind())).
			WithHint("only a terminal descriptor produced by the resolution loop can be fetched")
	}
	if err := PrepareOutputDir(outputDir); err != nil {
		return err
	}
	return f.Fetch(ctx, desc, outputDir)
}

// PrepareOutputDir ensures outputDir exists and is empty, creating it if
// it does not exist yet (§4.5 "output directory must not already contain
// content"). A path that exists as a regular file, or as a non-empty
// directory, is rejected.
func PrepareOutputDir(outputDir string) error {
	info, err := os.Stat(outputDir)
	if os.IsNotExist(err) {
		return os.MkdirAll(outputDir, 0o755)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", outputDir, err)
	}
	if !info.IsDir() {
		return rerrors.NewOutputDirIsFileError(outputDir)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", outputDir, err)
	}
	if len(entries) > 0 {
		return rerrors.NewOutputDirNotEmptyError(outputDir)
	}
	return nil
}
