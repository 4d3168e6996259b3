package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes uploads to a directory served statically by the HTTP
// layer and returns URLs under publicBase.
type LocalStore struct {
	baseDir    string
	publicBase string
}

func NewLocalStore(baseDir, publicBase string) *LocalStore {
	return &LocalStore{
		baseDir:    baseDir,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// Save stores data under a fresh random name (original names are untrusted
// user input and may collide) and returns the public URL.
func (s *LocalStore) Save(_ context.Context, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("prepare upload dir: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext
	dst := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("store file: %w", err)
	}
	return s.publicBase + "/uploads/" + name, nil
}
