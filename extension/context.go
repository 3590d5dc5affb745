// context.go defines the Context interface for extension access to resolvemcp
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions: they reach
// the host application and configuration, nothing else.
//
// Extensions receive Context during Init() and with every MCP tool call,
// not at construction, because extensions register before the host
// connection exists.

package extension

import (
	"github.com/jpl-au/resolvemcp/internal/config"
	"github.com/jpl-au/resolvemcp/internal/resolve"
)

// Context provides extensions controlled access to resolvemcp internals.
type Context interface {
	// Host returns the connection to DaVinci Resolve. The connection is
	// dialled lazily; calls report resolve.ErrNotConnected while the
	// application is not running.
	Host() resolve.Host

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	host resolve.Host
	cfg  *config.Config
}

// NewContext creates a new extension context.
func NewContext(host resolve.Host, cfg *config.Config) Context {
	return &extContext{
		host: host,
		cfg:  cfg,
	}
}

func (c *extContext) Host() resolve.Host {
	return c.host
}

func (c *extContext) Config() *config.Config {
	return c.cfg
}
