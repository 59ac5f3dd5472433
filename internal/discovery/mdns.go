package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type bot backends advertise
	ServiceType = "_osrsbots._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the maximum time to wait for backend discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default dashboard HTTP port
	DefaultPort = 5000
)

// Scanner handles mDNS backend discovery
type Scanner struct {
	// Timeout is the maximum time to wait for backend discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForServers discovers all bot backends on the local network
// Returns a list of discovered backends or an error
func (s *Scanner) ScanForServers() ([]*Server, error) {
	return s.ScanForServersWithContext(context.Background())
}

// ScanForServersWithContext discovers backends with a custom context
func (s *Scanner) ScanForServersWithContext(ctx context.Context) ([]*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	servers := make([]*Server, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			server := s.parseServiceEntry(entry)
			if server != nil {
				servers = append(servers, server)
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()

	return servers, nil
}

// WaitForServer waits for a specific backend by instance name
// Returns the backend or an error if not found within timeout
func (s *Scanner) WaitForServer(name string) (*Server, error) {
	return s.WaitForServerWithContext(context.Background(), name)
}

// WaitForServerWithContext waits for a specific backend with a custom context
func (s *Scanner) WaitForServerWithContext(ctx context.Context, name string) (*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	serverChan := make(chan *Server, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			server := s.parseServiceEntry(entry)
			if server != nil && server.Name == name {
				serverChan <- server
				cancel() // Found the backend, cancel context
				return
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case server := <-serverChan:
		return server, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("backend named %s not found within timeout", name)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Server
// Returns nil if the entry carries no usable instance name or address
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Server {
	if entry.Instance == "" {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}

	// Fallback to IPv6 if no IPv4
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}

	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// Parse TXT records into metadata
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			// Key without value
			metadata[parts[0]] = ""
		}
	}

	return &Server{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForServers is a convenience function to scan for backends with a custom timeout
func ScanForServers(timeout time.Duration) ([]*Server, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForServers()
}

// QuickScan performs a fast scan with a 3-second timeout
func QuickScan() ([]*Server, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.ScanForServers()
}

// FindServer searches for a specific backend by instance name with default timeout
func FindServer(name string) (*Server, error) {
	scanner := NewScanner()
	return scanner.WaitForServer(name)
}
