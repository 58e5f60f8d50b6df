// Package registry binds live connections to registered display names
package registry

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxNameLength is the cap applied to display names during sanitization.
const MaxNameLength = 20

var (
	// ErrInvalidName means the name was empty after sanitization
	ErrInvalidName = errors.New("invalid player name")
	// ErrNameTaken means another live connection already registered the name
	ErrNameTaken = errors.New("name already in use")
	// ErrNotRegistered means the connection has no identity bound to it
	ErrNotRegistered = errors.New("player not registered")
)

// Registry owns the connection-to-name mapping and its reverse index.
// A name is only reserved while its connection is live; unregistering
// frees it for reuse.
type Registry struct {
	mu     sync.RWMutex
	byConn map[uuid.UUID]string
	byName map[string]uuid.UUID
	logger *zap.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		byConn: make(map[uuid.UUID]string),
		byName: make(map[string]uuid.UUID),
		logger: logger,
	}
}

// Sanitize trims surrounding whitespace and truncates the name to
// MaxNameLength runes. An empty result is invalid.
func Sanitize(rawName string) (string, error) {
	name := strings.TrimSpace(rawName)
	if runes := []rune(name); len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// Register sanitizes rawName and binds it to the connection. Re-registering
// the same connection overwrites its previous binding.
func (r *Registry) Register(connID uuid.UUID, rawName string) (string, error) {
	name, err := Sanitize(rawName)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, taken := r.byName[name]; taken && owner != connID {
		return "", ErrNameTaken
	}

	if prev, ok := r.byConn[connID]; ok && prev != name {
		delete(r.byName, prev)
	}

	r.byConn[connID] = name
	r.byName[name] = connID

	r.logger.Info("player registered",
		zap.String("connection_id", connID.String()),
		zap.String("player", name))

	return name, nil
}

// Lookup returns the name bound to the connection.
func (r *Registry) Lookup(connID uuid.UUID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byConn[connID]
	if !ok {
		return "", ErrNotRegistered
	}
	return name, nil
}

// ConnectionOf returns the connection currently bound to the name.
func (r *Registry) ConnectionOf(name string) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connID, ok := r.byName[name]
	return connID, ok
}

// Unregister removes the binding for the connection and returns the name
// it held. Used on disconnect.
func (r *Registry) Unregister(connID uuid.UUID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.byConn[connID]
	if !ok {
		return "", ErrNotRegistered
	}

	delete(r.byConn, connID)
	delete(r.byName, name)

	r.logger.Info("player unregistered",
		zap.String("connection_id", connID.String()),
		zap.String("player", name))

	return name, nil
}

// Count returns the number of currently registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}
