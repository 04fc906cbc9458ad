package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore mirrors the last written zone document to a local JSON file. The
// file doubles as a fallback read source when the database is unavailable or
// unconfigured.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file path of the mirror.
func (s *FileStore) Path() string {
	return s.path
}

// Read returns the stored document, or nil when the file does not exist.
func (s *FileStore) Read() (json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read zone file: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("zone file %s holds invalid JSON", s.path)
	}
	return json.RawMessage(raw), nil
}

// Write persists the document pretty-printed, via a temp file and rename so
// a crash mid-write cannot leave a truncated mirror behind.
func (s *FileStore) Write(doc json.RawMessage) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		return fmt.Errorf("failed to format zone document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create zone file directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write zone file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace zone file: %w", err)
	}
	return nil
}
