// Package fs provides the filesystem mirroring adapter.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"github.com/toolcube/toolcube/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const dirPerm = 0o755

// Mirror implements ports.Mirror: it makes dst an exact replica of src.
// Files whose content hash already matches are left in place, so repeated
// deployments of an unchanged tool touch nothing.
type Mirror struct {
	logger ports.Logger
}

// NewMirror creates a new Mirror.
func NewMirror(logger ports.Logger) *Mirror {
	return &Mirror{logger: logger}
}

// Sync replicates the tree at src into dst. Entries in dst that no longer
// exist in src are removed first.
func (m *Mirror) Sync(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "source directory does not exist"), "src", src)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("source is not a directory"), "src", src)
	}
	if err := os.MkdirAll(dst, dirPerm); err != nil {
		return zerr.Wrap(err, "failed to create target directory")
	}

	if err := m.prune(src, dst); err != nil {
		return err
	}

	// First pass creates the directory skeleton so file copies can run in
	// any order.
	var files []string
	err = filepath.WalkDir(src, func(path string, d iofs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(dst, rel), dirPerm)
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return zerr.Wrap(err, "failed to walk source tree")
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for _, rel := range files {
		g.Go(func() error {
			return m.copyFile(filepath.Join(src, rel), filepath.Join(dst, rel))
		})
	}
	return g.Wait()
}

// prune removes entries below dst that have no counterpart below src.
func (m *Mirror) prune(src, dst string) error {
	return filepath.WalkDir(dst, func(path string, d iofs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dst, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if _, err := os.Lstat(filepath.Join(src, rel)); errors.Is(err, iofs.ErrNotExist) {
			m.logger.Debug("removing stale entry", "path", path)
			if err := os.RemoveAll(path); err != nil {
				return zerr.Wrap(err, "failed to remove stale entry")
			}
			if d.IsDir() {
				return filepath.SkipDir
			}
		}
		return nil
	})
}

func (m *Mirror) copyFile(srcPath, dstPath string) error {
	if same, err := sameContent(srcPath, dstPath); err == nil && same {
		return nil
	}

	in, err := os.Open(srcPath) //nolint:gosec // path comes from walking the tool directory
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source file"), "path", srcPath)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return zerr.Wrap(err, "failed to stat source file")
	}

	out, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // dst is the env share dir
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create target file"), "path", dstPath)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dstPath)
	}
	if err := out.Close(); err != nil {
		return zerr.Wrap(err, "failed to close target file")
	}
	m.logger.Debug("copied", "src", srcPath, "dst", dstPath)
	return nil
}

// sameContent reports whether both files exist with equal content hashes.
func sameContent(a, b string) (bool, error) {
	ha, err := hashFile(a)
	if err != nil {
		return false, err
	}
	hb, err := hashFile(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

// hashFile computes the XXHash of a file's content.
func hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}
