package cpu

import "github.com/thelolagemann/sm83/pkg/log"

// Opt is a function that modifies a CPU instance.
type Opt func(c *CPU)

// Debug enables per-instruction tracing at debug level.
func Debug() Opt {
	return func(c *CPU) {
		c.Debug = true
	}
}

// WithLogger sets the logger used for tracing.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}
