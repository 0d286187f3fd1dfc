package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every slot in one JSON document on disk.
// Writes go through a temp file and a rename.
type FileStore struct {
	mu    sync.RWMutex
	Path  string
	slots map[string]string
}

// Reload reads the document from Path. A missing file is an empty store.
func (fs *FileStore) Reload() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.Path == "" {
		return errors.New("file store path empty")
	}
	b, err := os.ReadFile(fs.Path)
	if err != nil {
		if os.IsNotExist(err) {
			fs.slots = map[string]string{}
			return nil
		}
		return err
	}
	slots := map[string]string{}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &slots); err != nil {
			return err
		}
	}
	fs.slots = slots
	return nil
}

func (fs *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	v, ok := fs.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (fs *FileStore) Save(_ context.Context, key string, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.Path == "" {
		return errors.New("file store path empty")
	}
	next := make(map[string]string, len(fs.slots)+1)
	for k, v := range fs.slots {
		next[k] = v
	}
	next[key] = string(value)

	if dir := filepath.Dir(fs.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := fs.Path + ".tmp"
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, fs.Path); err != nil {
		return err
	}
	fs.slots = next
	return nil
}
