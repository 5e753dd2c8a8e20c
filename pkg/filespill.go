// Package pkg holds helpers shared by jsprobe's commands that do not depend on
// the JavaScript domain.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const spillDirName = "jsprobe-spill"

// FileSpill is an append-only, gob-encoded sequence of T kept on disk so that
// large mutant sets do not have to live in memory.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Range(f func(index uint64, item T) error) error
	Close() error
	Remove() error
}

// SpillOption configures NewFileSpill.
type SpillOption func(*spillConfig)

type spillConfig struct {
	dir string
}

// WithDir places the spill file in dir instead of the system temp directory.
func WithDir(dir string) SpillOption {
	return func(c *spillConfig) {
		c.dir = dir
	}
}

type fileSpillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewFileSpill creates an empty FileSpill backed by a fresh temp file.
func NewFileSpill[T any](opts ...SpillOption) (FileSpill[T], error) {
	cfg := spillConfig{dir: filepath.Join(os.TempDir(), spillDirName)}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := os.MkdirAll(cfg.dir, 0o750); err != nil {
		slog.Error("Failed to create spill directory", "path", cfg.dir, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	file, err := os.CreateTemp(cfg.dir, "spill-*.gob")
	if err != nil {
		slog.Error("Failed to create spill file", "path", cfg.dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("Created file spill", "path", file.Name())

	return &fileSpillImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

func (f *fileSpillImpl[T]) Path() string {
	return f.path
}

func (f *fileSpillImpl[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

func (f *fileSpillImpl[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.encoder == nil {
		return fmt.Errorf("spill %s is closed", f.path)
	}

	if err := f.encoder.Encode(item); err != nil {
		return fmt.Errorf("failed to encode item %d: %w", f.length, err)
	}

	f.length++

	return nil
}

func (f *fileSpillImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Range calls fn for every item in append order and stops at the first error
// fn returns.
func (f *fileSpillImpl[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.decode(func(i uint64, decoder *gob.Decoder) (bool, error) {
		var item T
		if err := decoder.Decode(&item); err != nil {
			return false, fmt.Errorf("failed to decode item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return false, err
		}

		return true, nil
	})
}

// decode opens a fresh reader and calls step once per stored item until step
// returns false. Callers hold mu.
func (f *fileSpillImpl[T]) decode(step func(i uint64, decoder *gob.Decoder) (bool, error)) error {
	if f.length == 0 {
		return nil
	}

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("Failed to open spill file", "path", f.path, "error", err)
		return fmt.Errorf("failed to open spill file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close spill reader", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range f.length {
		more, err := step(i, decoder)
		if err != nil {
			return err
		}

		if !more {
			return nil
		}
	}

	return nil
}

// Close stops further appends. Stored items stay readable until Remove.
func (f *fileSpillImpl[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.close()
}

func (f *fileSpillImpl[T]) close() error {
	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil
	f.encoder = nil

	if err != nil {
		slog.Error("Failed to close spill file", "path", f.path, "error", err)
		return err
	}

	return nil
}

// Remove closes the spill and deletes its file.
func (f *fileSpillImpl[T]) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	closeErr := f.close()

	removeErr := os.Remove(f.path)
	if errors.Is(removeErr, os.ErrNotExist) {
		removeErr = nil
	}

	f.length = 0

	return errors.Join(closeErr, removeErr)
}
