// Package discovery provides mDNS-based discovery of bot-management
// backends on the local network.
//
// Backends advertise themselves using the "_osrsbots._tcp" service
// type. Browsing that type yields one Server per running dashboard
// backend, carrying the instance name, address, port and any TXT
// record metadata (version, registered bot count).
//
// # Usage Example
//
//	// Discover backends with 10-second timeout
//	servers, err := discovery.ScanForServers(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, server := range servers {
//	    fmt.Printf("Found: %s at %s:%d\n", server.Name, server.IP, server.Port)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Backends must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions
// can run simultaneously without interference.
package discovery
