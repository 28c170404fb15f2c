// Package reconcile implements the staleness evaluator: the decision whether
// an existing environment satisfies a requested dependency set, and the
// minimal lock-file mutation when it does not.
package reconcile

import (
	"os"
	"path/filepath"

	"github.com/toolcube/toolcube/internal/core/domain"
	"github.com/toolcube/toolcube/internal/core/ports"
)

// Evaluator compares a requested dependency set against the lock file and
// version ledger of an installed environment.
type Evaluator struct {
	logger ports.Logger
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(logger ports.Logger) *Evaluator {
	return &Evaluator{logger: logger}
}

// Evaluate decides whether the environment below envParent must be rebuilt
// for the requested specifiers. lock is nil when the lock file is absent or
// unreadable; ledger is nil when the ledger file is absent or unreadable.
//
// The lock is mutated in place: a requested package missing from the lock is
// appended as its raw specifier, and a package whose installed pin violates
// its requested constraint has all of its entries replaced by the raw
// specifier. Unrelated pins are never downgraded or removed, so unrelated
// environment drift does not trigger rebuilds and identical requested sets
// produce identical lock files. When the verdict is to recreate, the lock is
// left canonically sorted; persisting it is the caller's job.
func (e *Evaluator) Evaluate(requested []string, lock *domain.Lockfile, ledger domain.Ledger, envParent string) (bool, error) {
	// Bootstrap predicate: the lock file, the install-path parent and the
	// ledger must all exist and parse. A partially initialized directory is
	// rebuilt from scratch.
	if lock == nil || ledger == nil || !dirExists(envParent) {
		e.logger.Debug("environment artifacts incomplete, full creation required",
			"env_parent", envParent, "lock", lock != nil, "ledger", ledger != nil)
		return true, nil
	}

	locked := lock.Entries()

	// Base staleness: the ledger's latest install must still hold a binary
	// directory.
	recreate := !dirExists(filepath.Join(ledger.Latest(), "bin"))
	if recreate {
		e.logger.Debug("latest install path lost its binary directory", "latest", ledger.Latest())
	}

	for _, raw := range requested {
		spec, err := domain.ParseSpecifier(raw)
		if err != nil {
			return false, err
		}

		pinned, ok := locked[spec.Name]
		if !ok {
			// Requested package that is not installed yet.
			lock.Append(raw)
			recreate = true
			e.logger.Debug("dependency missing from lock file", "package", spec.Name)
			continue
		}

		if spec.Constraint == "" {
			continue
		}
		constraint, err := domain.ParseConstraint(spec.Constraint)
		if err != nil {
			return false, err
		}
		if !constraint.Matches(domain.ParseVersion(pinned[0])) {
			// Another version is needed: replace only this package's pins.
			lock.RemovePackage(spec.Name)
			lock.Append(raw)
			recreate = true
			e.logger.Debug("installed version violates constraint",
				"package", spec.Name, "installed", pinned[0], "constraint", spec.Constraint)
		}
	}

	if recreate {
		lock.Canonicalize()
	}
	return recreate, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
