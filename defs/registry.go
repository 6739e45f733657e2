package defs

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sync"
)

//go:embed bots.yaml
var defaultFS embed.FS

// ErrUnknownKind is returned when a species kind has no definition. A missing
// entry is a configuration error, not a per-tick recoverable condition.
var ErrUnknownKind = errors.New("unknown bot kind")

var registry struct {
	mu   sync.RWMutex
	defs map[Kind]*Definition
}

// Init installs a definition table as the process-wide registry. It replaces
// any previous table; callers do this once at startup, before any bot spawns.
func Init(defs map[Kind]*Definition) error {
	if len(defs) == 0 {
		return fmt.Errorf("init bot definitions: empty table")
	}
	registry.mu.Lock()
	registry.defs = defs
	registry.mu.Unlock()
	return nil
}

// InitFromFile loads and installs a YAML species table from disk.
func InitFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bot definitions: %w", err)
	}
	defs, err := Load(data)
	if err != nil {
		return err
	}
	return Init(defs)
}

// InitDefault installs the species table shipped with the binary.
func InitDefault() error {
	data, err := defaultFS.ReadFile("bots.yaml")
	if err != nil {
		return fmt.Errorf("read embedded bot definitions: %w", err)
	}
	defs, err := Load(data)
	if err != nil {
		return err
	}
	return Init(defs)
}

// Reset clears the registry. Tests use it to install their own tables without
// leaking state between cases.
func Reset() {
	registry.mu.Lock()
	registry.defs = nil
	registry.mu.Unlock()
}

// Get looks up the definition for a kind.
func Get(kind Kind) (*Definition, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if registry.defs == nil {
		return nil, fmt.Errorf("bot definitions not initialized: %w", ErrUnknownKind)
	}
	def, ok := registry.defs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return def, nil
}

// All returns the registered kinds in a stable order.
func All() []Kind {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return Kinds(registry.defs)
}
