package discovery

import (
	"fmt"
	"time"
)

// Server represents a discovered bot-management backend on the network
type Server struct {
	// Name is the advertised instance name (e.g., "osrsbots-desktop")
	Name string

	// Hostname is the mDNS hostname (e.g., "desktop.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.20")
	IP string

	// Port is the dashboard HTTP port (typically 5000)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "version=1.2.0", "bots=4"
	Metadata map[string]string

	// DiscoveredAt is when the backend was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the backend
func (s *Server) String() string {
	return fmt.Sprintf("Bot backend %s (%s) at %s:%d", s.Name, s.Hostname, s.IP, s.Port)
}

// BaseURL returns the HTTP base URL for the backend
func (s *Server) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", s.IP, s.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
