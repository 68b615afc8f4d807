package kv

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Dir stores each key as one JSON file under a data directory.
type Dir struct {
	mu   sync.RWMutex
	path string
}

func NewDir(dataDir string) (*Dir, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &Dir{path: dataDir}, nil
}

func (d *Dir) file(key string) string {
	return filepath.Join(d.path, key+".json")
}

func (d *Dir) Get(key string) ([]byte, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	b, err := os.ReadFile(d.file(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (d *Dir) Put(key string, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return os.WriteFile(d.file(key), value, 0o644)
}

func (d *Dir) Keys() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	return out, nil
}
