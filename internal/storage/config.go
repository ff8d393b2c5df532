package storage

import "fmt"

// Config holds storage configuration
type Config struct {
	Type    string // "local"
	Dir     string // root directory for local storage
	BaseURL string // public base, e.g. "http://localhost:8080"
}

// New builds the store selected by cfg.Type.
func New(cfg Config) (ObjectStore, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStore(cfg.BaseURL, cfg.Dir)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}
