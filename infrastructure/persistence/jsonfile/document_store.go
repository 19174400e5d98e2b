// Package jsonfile implements the document store over plain JSON files,
// one `<name>.json` per document under a data directory.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DocumentStore reads and writes named JSON documents as files.
type DocumentStore struct {
	dataDir string
	logger  *zap.Logger
}

// NewDocumentStore creates a file-backed document store rooted at dataDir.
func NewDocumentStore(dataDir string, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{
		dataDir: dataDir,
		logger:  logger,
	}
}

// Load returns the contents of `<dataDir>/<name>.json`.
func (s *DocumentStore) Load(ctx context.Context, name string) ([]byte, error) {
	path := s.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return data, nil
}

// Save replaces `<dataDir>/<name>.json`. The write goes through a temporary
// file and a rename so a crash mid-write never leaves a truncated document.
func (s *DocumentStore) Save(ctx context.Context, name string, data []byte) error {
	path := s.path(name)

	tmp, err := os.CreateTemp(s.dataDir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write document %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close document %s: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace document %s: %w", name, err)
	}

	s.logger.Debug("document saved",
		zap.String("document", name),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (s *DocumentStore) path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}
