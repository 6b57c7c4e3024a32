package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/courtside/racketdb/internal/config"
)

// localClient writes objects under a directory on disk.  It exists for
// development and tests; the URL it returns assumes the server mounts the
// directory as a static route.
type localClient struct {
	root      string
	publicURL string
}

func newLocalClient(cfg config.StorageConfig) (Client, error) {
	root := cfg.LocalPath
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	pub := strings.TrimSuffix(cfg.PublicURL, "/")
	if pub == "" {
		pub = "/static"
	}
	return &localClient{root: root, publicURL: pub}, nil
}

func (l *localClient) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	path := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return l.publicURL + "/" + key, nil
}

func (l *localClient) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
