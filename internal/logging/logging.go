// Package logging builds the engine's zap logger.
package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a JSON production logger for "production" and a human
// readable development logger for anything else.
func New(env string) (*zap.Logger, error) {
	if strings.EqualFold(strings.TrimSpace(env), "production") {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Must is New for the composition root: it never fails, falling back to a
// no-op logger.
func Must(env string) *zap.Logger {
	l, err := New(env)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
