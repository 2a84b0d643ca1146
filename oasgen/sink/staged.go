package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StagedDir collects files in a staging directory next to Root. Commit
// replaces Root with the staging directory, so Root ends up holding exactly
// the files written during the run; Discard drops them and leaves Root
// untouched.
type StagedDir struct {
	Root    string
	staging string
	fs      *FilesystemSink

	// leftover is the previous output that Commit moved aside but could
	// not remove.
	leftover  string
	removeAll func(string) error
}

// NewStagedDir creates the staging directory for root. The parent of root
// is created if missing.
func NewStagedDir(root string) (*StagedDir, error) {
	root = filepath.Clean(root)
	parent := filepath.Dir(root)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}
	staging := filepath.Join(parent, "."+filepath.Base(root)+".staging-"+uuid.NewString())
	if err := os.Mkdir(staging, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &StagedDir{
		Root:      root,
		staging:   staging,
		fs:        NewFilesystemSink(staging),
		removeAll: os.RemoveAll,
	}, nil
}

// StagingDir returns the directory files are written to before Commit.
func (s *StagedDir) StagingDir() string { return s.staging }

// WriteFile writes content into the staging directory.
func (s *StagedDir) WriteFile(ctx context.Context, path string, content []byte) error {
	return s.fs.WriteFile(ctx, path, content)
}

// Commit swaps the staging directory into Root. A previous Root is moved
// aside first and restored if the swap fails. Once the swap succeeded the
// commit is complete; a previous Root that cannot be removed afterwards is
// reported by Leftover, not as an error.
func (s *StagedDir) Commit() error {
	backup := s.staging + ".old"
	hadRoot := true
	if err := os.Rename(s.Root, backup); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to move %s aside: %w", s.Root, err)
		}
		hadRoot = false
	}

	if err := os.Rename(s.staging, s.Root); err != nil {
		if hadRoot {
			_ = os.Rename(backup, s.Root)
		}
		return fmt.Errorf("failed to move staged output into %s: %w", s.Root, err)
	}

	if hadRoot {
		if err := s.removeAll(backup); err != nil {
			s.leftover = backup
		}
	}
	return nil
}

// Leftover returns the directory holding the previous output when Commit
// could not remove it, or "".
func (s *StagedDir) Leftover() string { return s.leftover }

// Discard removes the staging directory.
func (s *StagedDir) Discard() error {
	return os.RemoveAll(s.staging)
}
