// Package theme owns the light/dark display preference of a page.
//
// A Controller is the single owner of the mode. Readers may call Mode and
// Class concurrently; the mode changes only through Toggle and Set, and every
// change is mirrored to Storage and announced to subscribers.
package theme

import (
	"errors"
	"sync"
)

// StorageKey is the key the mode is persisted under.
const StorageKey = "theme"

// Mode is a display theme.
type Mode string

// Available modes.
const (
	Light   Mode = "light"
	Dark    Mode = "dark"
	Default      = Dark
)

var (
	// ErrInvalidMode is returned for anything but Light or Dark.
	ErrInvalidMode = errors.New("invalid theme mode")
	// ErrNotStored is returned by Storage.Get when no value is saved.
	ErrNotStored = errors.New("theme not stored")
)

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Light, Dark:
		return m, nil
	default:
		return "", ErrInvalidMode
	}
}

// Valid reports whether m is Light or Dark.
func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Light {
		return Dark
	}

	return Light
}

func (m Mode) String() string {
	return string(m)
}

// Storage persists the mode.
type Storage interface {
	// Get returns the stored value or ErrNotStored.
	Get(key string) (string, error)
	Set(key, value string) error
}

// Controller holds the current mode of one page.
type Controller struct {
	storage Storage

	mu          sync.RWMutex
	mode        Mode
	initialized bool
	subscribers []func(Mode)
}

// New returns a controller in the default mode. Call Initialize to load the
// saved preference.
func New(storage Storage) *Controller {
	return &Controller{
		storage: storage,
		mode:    Default,
	}
}

// Subscribe registers fn to be called with the new mode after every change,
// including the one made by Initialize.
func (c *Controller) Subscribe(fn func(Mode)) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.mu.Unlock()
}

// Initialize adopts the stored mode. A missing or unknown stored value
// selects Default and writes it back. Any other read error selects Default
// without touching storage and is returned. Only the first call has any effect.
func (c *Controller) Initialize() error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return nil
	}
	c.initialized = true

	var initErr error

	stored, err := c.storage.Get(StorageKey)
	mode, parseErr := ParseMode(stored)
	switch {
	case err != nil && !errors.Is(err, ErrNotStored):
		mode = Default
		initErr = err
	case err != nil || parseErr != nil:
		mode = Default
		initErr = c.storage.Set(StorageKey, mode.String())
	}
	c.mode = mode
	subs := c.subscribers
	c.mu.Unlock()

	notify(subs, mode)

	return initErr
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.mode
}

// Class returns the marker placed on the page root element.
func (c *Controller) Class() string {
	return c.Mode().String()
}

// Toggle flips the mode and returns the new one. The in-memory mode changes
// even if the write to storage fails.
func (c *Controller) Toggle() (Mode, error) {
	c.mu.Lock()
	mode := c.mode.Opposite()
	err := c.apply(mode)

	return mode, err
}

// Set switches to mode. Invalid values are rejected with ErrInvalidMode.
func (c *Controller) Set(mode Mode) error {
	if !mode.Valid() {
		return ErrInvalidMode
	}

	c.mu.Lock()

	return c.apply(mode)
}

// apply must be called with c.mu held and releases it.
func (c *Controller) apply(mode Mode) error {
	c.mode = mode
	err := c.storage.Set(StorageKey, mode.String())
	subs := c.subscribers
	c.mu.Unlock()

	notify(subs, mode)

	return err
}

func notify(subs []func(Mode), mode Mode) {
	for _, fn := range subs {
		fn(mode)
	}
}

// MemoryStorage is a Storage kept in memory.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Get implements Storage.
func (s *MemoryStorage) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return "", ErrNotStored
	}

	return v, nil
}

// Set implements Storage.
func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	return nil
}
