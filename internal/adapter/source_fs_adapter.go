// Package adapter contains the infrastructure jsprobe's domain layer talks
// to: the filesystem, the report store and the JavaScript sandbox.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the domain layer needs
// so workflows can be tested without touching the disk.
type SourceFSAdapter interface {
	// ReadFile loads a source file with its content hash.
	ReadFile(ctx context.Context, path m.Path) (m.File, error)

	// ReadInputs loads an input suite.
	ReadInputs(ctx context.Context, path m.Path) ([]m.Input, error)

	// WriteFile writes content, creating parent directories.
	WriteFile(ctx context.Context, path m.Path, content []byte) error
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk and hashes them with SHA-256.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) (m.File, error) {
	if err := ctx.Err(); err != nil {
		return m.File{}, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.File{}, err
	}

	return m.File{
		Path:    path,
		Hash:    fmt.Sprintf("%x", sha256.Sum256(data)),
		Content: string(data),
	}, nil
}

type inputSuite struct {
	Inputs []m.Input `yaml:"inputs"`
}

// ReadInputs decodes an input suite. The document is either a mapping with an
// `inputs` list or the list itself.
func (a *LocalSourceFSAdapter) ReadInputs(ctx context.Context, path m.Path) ([]m.Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse inputs %s: %w", path, err)
	}

	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var inputs []m.Input
		if err := root.Decode(&inputs); err != nil {
			return nil, fmt.Errorf("failed to decode inputs %s: %w", path, err)
		}

		return inputs, nil
	}

	var suite inputSuite
	if err := root.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to decode inputs %s: %w", path, err)
	}

	return suite.Inputs, nil
}

// WriteFile writes content to path with 0o600 permissions.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o755); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, 0o600)
}
