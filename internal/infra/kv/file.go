package kv

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	repo "storefront/internal/repository"
)

// 1ファイル1JSONドキュメントのファイル実装。
// 書き込みは一時ファイル→renameで、部分書き込みを残さない。
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &File{path: path}, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return nil, err
	}

	v, ok := data[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return v, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}

	data[key] = json.RawMessage(value)
	return f.save(data)
}

func (f *File) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}

	delete(data, key)
	return f.save(data)
}

func (f *File) load() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	data := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &data); err != nil {
		//壊れたファイルは空扱いで読み進める（起動を止めない）
		return map[string]json.RawMessage{}, nil
	}
	return data, nil
}

func (f *File) save(data map[string]json.RawMessage) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
