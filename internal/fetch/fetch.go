// Package fetch retrieves API documents from local paths or remote
// sources understood by go-getter (http, https, s3, git, ...).
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	getter "github.com/hashicorp/go-getter"
)

// Options controls retries of remote fetches.
type Options struct {
	// Attempts is the number of tries (default: 3).
	Attempts uint
	// Delay is the base delay between tries (default: 200ms).
	Delay time.Duration
}

// Fetch returns the content of src. Existing local paths are made absolute
// before being handed to go-getter.
func Fetch(ctx context.Context, src string, opts Options) ([]byte, error) {
	if opts.Attempts == 0 {
		opts.Attempts = 3
	}
	if opts.Delay == 0 {
		opts.Delay = 200 * time.Millisecond
	}

	if _, err := os.Stat(src); err == nil {
		abs, err := filepath.Abs(src)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
		src = abs
	}

	dir, err := os.MkdirTemp("", "oasgen-fetch-")
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	defer os.RemoveAll(dir)

	dst := filepath.Join(dir, "document")
	err = retry.Do(
		func() error {
			return getter.GetFile(dst, src, getter.WithContext(ctx))
		},
		retry.Context(ctx),
		retry.Attempts(opts.Attempts),
		retry.Delay(opts.Delay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", src, err)
	}

	content, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return content, nil
}
