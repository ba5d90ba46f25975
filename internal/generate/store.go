package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrNotStored is returned by Store.Get for a name that was never put.
var ErrNotStored = errors.New("not stored")

// Store is a blob store keyed by file name. The pipeline uses one for the
// raw fetch cache and one for the committed data files.
type Store interface {
	Get(name string) ([]byte, error)
	Put(name string, b []byte) error
}

// DirStore keeps blobs as files in a directory.
type DirStore struct {
	Dir string
}

func (d DirStore) Get(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(d.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotStored)
	}
	return b, err
}

// Put writes b to a temporary file and renames it over name, so readers
// never see a half-written file.
func (d DirStore) Put(name string, b []byte) error {
	// 0755/0644: the data directory is committed and read by other tools.
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", d.Dir, err)
	}
	path := filepath.Join(d.Dir, name)
	tmp, err := os.CreateTemp(d.Dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(b); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	success = true
	return nil
}

// MemStore is an in-memory Store, used in tests and dry runs.
type MemStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (m *MemStore) Get(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotStored)
	}
	return append([]byte(nil), b...), nil
}

func (m *MemStore) Put(name string, b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = append([]byte(nil), b...)
	return nil
}

// Names lists the stored blob names, sorted.
func (m *MemStore) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.blobs))
	for n := range m.blobs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
