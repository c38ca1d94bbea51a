package fetch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/reporef/reporef/internal/rerrors"
)

const lockFileName = ".reporef.lock"

// lockRetryInterval is how often TryLockContext polls for the lock before
// ctx is done. PrepareOutputDir already guarantees the directory is ours
// before we get here, so contention is expected to be rare and brief.
const lockRetryInterval = 50 * time.Millisecond

// WithOutputLock holds an exclusive file lock on outputDir for the
// duration of fn, so two concurrent `reporef fetch` invocations targeting
// the same directory fail fast instead of interleaving writes. The lock
// file itself lives inside outputDir and is never treated as fetched
// content.
func WithOutputLock(ctx context.Context, outputDir string, fn func() error) error {
	lockPath := filepath.Join(outputDir, lockFileName)
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return rerrors.Wrap(rerrors.CategoryIO, "acquiring output directory lock", err)
	}
	if !locked {
		return rerrors.New(rerrors.CategoryIO, "output directory "+outputDir+" is locked by another fetch")
	}
	defer fl.Unlock()

	return fn()
}
