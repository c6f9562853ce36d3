package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/OscarDom1/community-resource-platform/internal/filex"
)

const tokenFileName = "token"

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in an owner-only file.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates dir if needed and stores the token inside it.
func NewFileTokenStore(dir string) (*FileTokenStore, error) {
	d, err := filex.EnsureSubDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileTokenStore{path: filepath.Join(d, tokenFileName)}, nil
}

// Load returns the saved token, or "" when none is saved.
func (s *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileTokenStore) Save(token string) error {
	return filex.WritePrivate(s.path, []byte(token))
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
