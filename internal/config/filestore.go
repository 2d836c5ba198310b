package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// keyDelimiter replaces viper's "." so keys containing dots stay flat.
const keyDelimiter = "::"

// FileStore persists the document as a JSON file. Keys are stored in lower
// case; keys written by other tools keep their dots and values.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// NewDefaultFileStore creates a store at the platform config path.
func NewDefaultFileStore() (*FileStore, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return NewFileStore(path), nil
}

// Location returns the config file path.
func (s *FileStore) Location() string {
	return s.path
}

func newViper() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
}

// Load reads the document. A missing or unparsable file loads as empty.
func (s *FileStore) Load(_ context.Context) (Document, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return Document{}, nil
	}

	v := newViper()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		logrus.WithError(err).WithField("path", s.path).Warn("config file unreadable, starting empty")
		return Document{}, nil
	}

	return Document(v.AllSettings()), nil
}

// Save writes the whole document, creating the config directory if needed.
func (s *FileStore) Save(_ context.Context, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper()
	v.SetConfigType("json")
	if err := v.MergeConfigMap(doc.Clone()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
