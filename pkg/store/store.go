// Package store persists POI position snapshots outside the generation
// core. Entries are keyed by POI id with upsert semantics.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

// PositionsFile is the file FileStore keeps next to city.yaml.
const PositionsFile = "positions.yaml"

// PositionStore is the persistence boundary for computed positions.
type PositionStore interface {
	// Snapshot returns every stored position, sorted by id.
	Snapshot(ctx context.Context) ([]spec.Position, error)
	// Upsert inserts or replaces the given positions.
	Upsert(ctx context.Context, positions []spec.Position) error
}

func merge(existing, updates []spec.Position) []spec.Position {
	byID := make(map[string]spec.Position, len(existing)+len(updates))
	for _, p := range existing {
		byID[p.ID] = p
	}
	for _, p := range updates {
		byID[p.ID] = p
	}
	out := make([]spec.Position, 0, len(byID))
	for _, p := range byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MemoryStore keeps positions in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	positions []spec.Position
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Snapshot(ctx context.Context) ([]spec.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]spec.Position{}, m.positions...), nil
}

func (m *MemoryStore) Upsert(ctx context.Context, positions []spec.Position) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = merge(m.positions, positions)
	return nil
}

// FileStore keeps positions in a YAML file. A missing file is an empty
// snapshot.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type positionsDoc struct {
	Positions []spec.Position `yaml:"positions"`
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ProjectFileStore returns the store kept in a project directory.
func ProjectFileStore(projectDir string) *FileStore {
	return NewFileStore(filepath.Join(projectDir, PositionsFile))
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Snapshot(ctx context.Context) ([]spec.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileStore) Upsert(ctx context.Context, positions []spec.Position) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.read()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(positionsDoc{Positions: merge(existing, positions)})
	if err != nil {
		return fmt.Errorf("encoding positions: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) read() ([]spec.Position, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return []spec.Position{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	var doc positionsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	if doc.Positions == nil {
		doc.Positions = []spec.Position{}
	}
	return doc.Positions, nil
}
