package storage

import "errors"

var (
	// ErrNotFound is returned by Get when the slot holds no value
	ErrNotFound = errors.New("slot not found")
	// ErrNotInitialized is returned by Load when the storage medium doesn't exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'habitkit init' first")
	// ErrNotLoaded is returned when a slot is accessed before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a key-value medium holding whole-document slots. Values are
// opaque strings; callers own serialization.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Slots
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error

	// Utils
	GetConfigPath() string
}
