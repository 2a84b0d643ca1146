// Package sink provides output destinations for generated handler files.
//
// Handler output is flat: every file lives directly in the output directory
// and is addressed by its base name.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// OutputSink receives generated files.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	WriteFile(ctx context.Context, name string, content []byte) error
}

// ValidName reports whether name can be used as an output file name. Names
// starting with "." are reserved for temporary and staging files.
func ValidName(name string) error {
	switch {
	case name == "":
		return errors.New("file name is empty")
	case strings.ContainsAny(name, `/\:`):
		return errors.New("file name must not contain a path separator")
	case strings.HasPrefix(name, "."):
		return errors.New("file name must not start with a dot")
	}
	return nil
}

// FilesystemSink writes files into Dir, creating it on first write.
// Each file is written to a temporary file and renamed into place, so a
// reader never observes a partial handler.
type FilesystemSink struct {
	Dir string
}

func NewFilesystemSink(dir string) *FilesystemSink {
	return &FilesystemSink{Dir: dir}
}

func (s *FilesystemSink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidName(name); err != nil {
		return fmt.Errorf("%q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, ".oasgen-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	_, err = tmp.Write(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0644)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err == nil {
		err = os.Rename(tmp.Name(), filepath.Join(s.Dir, name))
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// MemorySink keeps files in memory. A run renders every handler into a
// MemorySink and flushes it only when all operations succeeded.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under name. A later write to the same
// name replaces it.
func (s *MemorySink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidName(name); err != nil {
		return fmt.Errorf("%q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), content...)
	return nil
}

// Get returns a copy of the named file, or nil.
func (s *MemorySink) Get(name string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[name]
	if !ok {
		return nil
	}
	return append([]byte{}, content...)
}

// Paths returns the stored names in sorted order.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FlushTo writes every stored file to dst in name order and stops at the
// first failure.
func (s *MemorySink) FlushTo(ctx context.Context, dst OutputSink) error {
	for _, name := range s.Paths() {
		if err := dst.WriteFile(ctx, name, s.Get(name)); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
