package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

type fileEntry struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type fileData struct {
	Entries map[string]fileEntry `json:"entries"`
}

// FileRepository keeps every entry in a single JSON document, rewritten
// through a temp file and rename so a crash never leaves it half written.
type FileRepository struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

var _ Repository = (*FileRepository)(nil)

func NewFileRepository(path string) (*FileRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: empty state file path")
	}
	return &FileRepository{path: path, now: time.Now}, nil
}

func (r *FileRepository) Close() error { return nil }

func (r *FileRepository) Get(ctx context.Context, key string) (Entry, error) {
	entries, err := r.GetMany(ctx, key)
	if err != nil {
		return Entry{}, err
	}
	e, ok := entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *FileRepository) GetMany(ctx context.Context, keys ...string) (map[string]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]Entry, len(keys))
	for _, k := range keys {
		if fe, ok := data.Entries[k]; ok {
			out[k] = Entry{Key: k, Value: fe.Value, UpdatedAt: fe.UpdatedAt}
		}
	}
	return out, nil
}

func (r *FileRepository) Set(ctx context.Context, key, value string) error {
	return r.SetMany(ctx, []Entry{{Key: key, Value: value}})
}

func (r *FileRepository) SetMany(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := r.load()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Key) == "" {
			return errors.New("storage: empty key")
		}
		at := e.UpdatedAt
		if at.IsZero() {
			at = r.now()
		}
		data.Entries[e.Key] = fileEntry{Value: e.Value, UpdatedAt: at.UTC()}
	}
	return r.save(data)
}

func (r *FileRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := data.Entries[key]; !ok {
		return ErrNotFound
	}
	delete(data.Entries, key)
	return r.save(data)
}

func (r *FileRepository) ListKeys(ctx context.Context, filter KeyFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	data, err := r.load()
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(data.Entries))
	for k := range data.Entries {
		if strings.HasPrefix(k, filter.Prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if filter.Offset > 0 {
		if filter.Offset >= len(keys) {
			return []string{}, nil
		}
		keys = keys[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(keys) {
		keys = keys[:filter.Limit]
	}
	return keys, nil
}

func (r *FileRepository) load() (fileData, error) {
	data := fileData{Entries: make(map[string]fileEntry)}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return data, fmt.Errorf("read state file: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("parse state file: %w", err)
	}
	if data.Entries == nil {
		data.Entries = make(map[string]fileEntry)
	}
	return data, nil
}

func (r *FileRepository) save(data fileData) error {
	dir := filepath.Dir(r.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}
