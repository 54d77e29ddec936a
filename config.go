package silo

import (
	"log/slog"

	"github.com/TheBitDrifter/bark"
)

// Config holds global configuration applied to every world created afterwards
var Config config = config{
	logger:         bark.For("silo"),
	fingerprint:    DefaultFingerprint,
	columnCapacity: 16,
}

type config struct {
	logger         *slog.Logger
	fingerprint    FingerprintFunc
	columnCapacity int
}

// SetLogger configures the structured logger used by new worlds. A nil logger
// restores the bark logger.
func (c *config) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = bark.For("silo")
	}
	c.logger = logger
}

// SetFingerprintFunc configures the hash used to fingerprint component type names
func (c *config) SetFingerprintFunc(fn FingerprintFunc) {
	if fn == nil {
		fn = DefaultFingerprint
	}
	c.fingerprint = fn
}

// SetColumnCapacity configures the initial row capacity of new archetype columns
func (c *config) SetColumnCapacity(rows int) {
	c.columnCapacity = max(rows, 0)
}
