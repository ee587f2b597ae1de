// Package theme holds the process-wide light/dark selection.
package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

var ErrUnknownMode = errors.New("unknown theme mode")

func (m Mode) String() string { return string(m) }

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownMode)
	}
}

// Registry starts in Light and is never persisted.
type Registry struct {
	mu   sync.RWMutex
	mode Mode
}

func NewRegistry() *Registry {
	return &Registry{mode: Light}
}

func (r *Registry) Current() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// Toggle flips the mode and returns the new one.
func (r *Registry) Toggle() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mode == Dark {
		r.mode = Light
	} else {
		r.mode = Dark
	}
	return r.mode
}

func (r *Registry) Set(m Mode) error {
	if m != Light && m != Dark {
		return fmt.Errorf("%q: %w", string(m), ErrUnknownMode)
	}
	r.mu.Lock()
	r.mode = m
	r.mu.Unlock()
	return nil
}
