package main

import (
	"fmt"
	"net"
	"time"
)

const (
	defaultIdleTimeout = 10 * time.Second
	defaultMaxRequests = 100
)

// Config is shared read-only by every session.
type Config struct {
	Root         string
	VirtualHosts bool // serve Root/<host>/... instead of Root/...
	IdleTimeout  time.Duration
	MaxRequests  int
	Addr         string // listening address, host:port
}

func DefaultConfig() *Config {
	return &Config{
		Root:         ".",
		VirtualHosts: true,
		IdleTimeout:  defaultIdleTimeout,
		MaxRequests:  defaultMaxRequests,
		Addr:         "127.0.1.1:8080",
	}
}

func (c *Config) validate() error {
	if c.Root == "" {
		return fmt.Errorf("empty document root")
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("invalid idle timeout: %v", c.IdleTimeout)
	}
	if c.MaxRequests <= 0 {
		return fmt.Errorf("invalid request limit: %d", c.MaxRequests)
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid address %q: %v", c.Addr, err)
	}
	return nil
}

// listenPort is the port used in redirects when Host carries none.
func (c *Config) listenPort() string {
	_, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return "80"
	}
	return port
}
