// Package logging provides the slog handler and size-based log file
// rotation used by the launcher.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
)

// FileRotator writes a log file and rotates it when it exceeds a size
// limit. Rotated files are renamed path.1 .. path.N, oldest last, and
// optionally brotli-compressed (path.N.br).
type FileRotator struct {
	mu       sync.Mutex
	path     string
	maxSize  int64
	maxFiles int
	compress bool

	file *os.File
	size int64
}

// NewFileRotator opens (or creates) the log file at path.
func NewFileRotator(path string, maxSize int64, maxFiles int, compress bool) (*FileRotator, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("invalid max size: %d", maxSize)
	}
	if maxFiles < 1 {
		maxFiles = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &FileRotator{
		path:     path,
		maxSize:  maxSize,
		maxFiles: maxFiles,
		compress: compress,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRotator) open() error {
	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	r.file = file
	r.size = info.Size()
	return nil
}

func (r *FileRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, os.ErrClosed
	}
	if r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			// Keep logging into the current file rather than dropping
			// records when rotation fails.
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// rotate closes the current file, shifts the numbered history and starts
// a fresh file. Caller holds the lock.
func (r *FileRotator) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}
	r.file = nil

	// Shift path.N-1 -> path.N, dropping the oldest.
	for i := r.maxFiles - 1; i >= 1; i-- {
		oldName := r.rotatedName(i)
		newName := r.rotatedName(i + 1)
		if i == r.maxFiles-1 {
			os.Remove(newName)
		}
		if _, err := os.Stat(oldName); err == nil {
			os.Rename(oldName, newName)
		}
	}

	first := r.rotatedName(1)
	if r.compress {
		if err := compressFile(r.path, first); err != nil {
			// Fall back to a plain rename.
			os.Rename(r.path, strings.TrimSuffix(first, ".br"))
		} else {
			os.Remove(r.path)
		}
	} else {
		if err := os.Rename(r.path, first); err != nil {
			return err
		}
	}

	return r.open()
}

func (r *FileRotator) rotatedName(i int) string {
	name := fmt.Sprintf("%s.%d", r.path, i)
	if r.compress {
		name += ".br"
	}
	return name
}

func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	bw := brotli.NewWriter(out)
	if _, err := io.Copy(bw, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := bw.Close(); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// Sync flushes the current log file to disk.
func (r *FileRotator) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	return r.file.Sync()
}

// Close closes the underlying file. Writes after Close fail.
func (r *FileRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ParseSize parses human readable sizes like "100MB", "1GB" or "512KB".
// A bare number is bytes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive: %d", n)
	}
	return n * multiplier, nil
}
