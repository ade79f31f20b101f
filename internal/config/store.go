package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/ifmon/internal/errors"
	"github.com/rileyhilliard/ifmon/internal/logger"
	"gopkg.in/yaml.v3"
)

// Marshal encodes settings as a YAML document with two-space indentation.
func Marshal(s *Settings) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes settings to path, creating the parent directory if needed.
func Save(path string, s *Settings) error {
	data, err := Marshal(s)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSettings, "Failed to encode settings", "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrSettings,
			"Failed to create settings directory",
			"Check permissions on "+filepath.Dir(path))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrSettings,
			"Failed to write settings file",
			"Check permissions on "+path)
	}

	return nil
}

// Store is a best-effort handle on the settings document. Read and write
// failures are logged at debug level and otherwise ignored.
type Store struct {
	path string
	log  logger.Logger
}

// NewStore creates a store for the document at path. A nil logger discards output.
func NewStore(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.Noop()
	}
	return &Store{path: path, log: log}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored settings, or defaults if the document is unusable.
func (s *Store) Load() *Settings {
	settings, err := Load(s.path)
	if err != nil {
		s.log.Debug("using default settings: %s", errors.Summary(err))
	}
	return settings
}

// Save persists settings, ignoring failures.
func (s *Store) Save(settings *Settings) {
	if s.path == "" {
		return
	}
	if err := Save(s.path, settings); err != nil {
		s.log.Debug("settings not saved: %s", errors.Summary(err))
	}
}
