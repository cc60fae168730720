package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileRepository keeps the state as one JSON document.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Path() string { return r.path }

func (r *FileRepository) Close() error { return nil }

func (r *FileRepository) Load(ctx context.Context) (State, error) {
	if err := ctx.Err(); err != nil {
		return DefaultState(), err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultState(), nil
		}
		return DefaultState(), fmt.Errorf("storage: read %s: %w", r.path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return DefaultState(), nil
	}
	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return DefaultState(), fmt.Errorf("storage: parse %s: %w", r.path, err)
	}
	raw := make(map[string][]byte, len(doc))
	for key, value := range doc {
		raw[key] = value
	}
	return decodeState(raw)
}

func (r *FileRepository) Save(ctx context.Context, st State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	values, err := encodeState(st)
	if err != nil {
		return err
	}
	doc := make(map[string]json.RawMessage, len(values))
	for key, value := range values {
		if value != nil {
			doc[key] = value
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", r.path, err)
	}
	return writeFileAtomic(r.path, data)
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: replace %s: %w", path, err)
	}
	return nil
}

// Backup copies the state file next to itself with a timestamp suffix.
func (r *FileRepository) Backup(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("storage: read %s: %w", r.path, err)
	}
	dst := fmt.Sprintf("%s.%s.bak", r.path, time.Now().UTC().Format("20060102T150405.000000000"))
	if err := writeFileAtomic(dst, data); err != nil {
		return "", err
	}
	return dst, nil
}
