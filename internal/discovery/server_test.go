package discovery

import (
	"testing"
	"time"
)

func TestServer_String(t *testing.T) {
	server := &Server{
		Name:     "osrsbots-desktop",
		Hostname: "desktop.local.",
		IP:       "192.168.1.20",
		Port:     5000,
	}

	expected := "Bot backend osrsbots-desktop (desktop.local.) at 192.168.1.20:5000"
	if server.String() != expected {
		t.Errorf("Server.String() = %v, want %v", server.String(), expected)
	}
}

func TestServer_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		server   *Server
		expected string
	}{
		{
			name: "default dashboard port",
			server: &Server{
				IP:   "192.168.1.20",
				Port: 5000,
			},
			expected: "http://192.168.1.20:5000",
		},
		{
			name: "custom port",
			server: &Server{
				IP:   "10.0.0.5",
				Port: 8080,
			},
			expected: "http://10.0.0.5:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.server.BaseURL(); got != tt.expected {
				t.Errorf("Server.BaseURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestServer_GetMetadata(t *testing.T) {
	server := &Server{
		Metadata: map[string]string{
			"version": "1.2.0",
			"bots":    "4",
		},
	}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "existing key",
			key:      "version",
			expected: "1.2.0",
		},
		{
			name:     "another existing key",
			key:      "bots",
			expected: "4",
		},
		{
			name:     "non-existent key",
			key:      "missing",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := server.GetMetadata(tt.key); got != tt.expected {
				t.Errorf("Server.GetMetadata(%v) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestServer_GetMetadata_NilMap(t *testing.T) {
	server := &Server{
		Metadata: nil,
	}

	if got := server.GetMetadata("anything"); got != "" {
		t.Errorf("Server.GetMetadata() with nil map = %v, want empty string", got)
	}
}

func TestServer_DiscoveredAt(t *testing.T) {
	now := time.Now()
	server := &Server{
		Name:         "osrsbots-desktop",
		DiscoveredAt: now,
	}

	if server.DiscoveredAt != now {
		t.Errorf("Server.DiscoveredAt = %v, want %v", server.DiscoveredAt, now)
	}
}
