package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type fileContents struct {
	Version int               `json:"version"`
	Slots   map[string]string `json:"slots"`
}

// JSONStore keeps every slot in a single JSON file that is rewritten in full
// on each Set.
type JSONStore struct {
	path     string
	contents *fileContents
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.contents = &fileContents{
		Version: 1,
		Slots:   make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.contents = &fileContents{}
	if err := json.Unmarshal(data, s.contents); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.contents.Slots == nil {
		s.contents.Slots = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.contents, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Replace atomically via rename
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) (string, error) {
	if s.contents == nil {
		return "", ErrNotLoaded
	}

	value, ok := s.contents.Slots[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.contents == nil {
		return ErrNotLoaded
	}

	old, existed := s.contents.Slots[key]
	s.contents.Slots[key] = value
	if err := s.save(); err != nil {
		s.restore(key, old, existed)
		return err
	}
	return nil
}

func (s *JSONStore) Delete(key string) error {
	if s.contents == nil {
		return ErrNotLoaded
	}

	old, ok := s.contents.Slots[key]
	if !ok {
		return nil
	}
	delete(s.contents.Slots, key)
	if err := s.save(); err != nil {
		s.restore(key, old, true)
		return err
	}
	return nil
}

// restore puts a slot back the way it was before a failed save, so memory
// keeps matching the file.
func (s *JSONStore) restore(key, old string, existed bool) {
	if existed {
		s.contents.Slots[key] = old
	} else {
		delete(s.contents.Slots, key)
	}
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
