package discovery

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Endpoint is a calculation service found on the network
type Endpoint struct {
	// Instance is the advertised service instance name
	Instance string

	// Hostname is the mDNS hostname (e.g., "calc-box.local.")
	Hostname string

	// IP prefers IPv4 over IPv6
	IP string

	Port int

	// Path is the evaluation path taken from the TXT record
	Path string

	// Metadata contains the raw TXT record data
	Metadata map[string]string

	DiscoveredAt time.Time
}

// URL returns the evaluation URL of the endpoint
func (e *Endpoint) URL() string {
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(e.IP, strconv.Itoa(e.Port)),
		Path:   e.Path,
	}
	return u.String()
}

// String returns a human-readable string representation of the endpoint
func (e *Endpoint) String() string {
	return fmt.Sprintf("%s (%s) at %s", e.Instance, strings.TrimSuffix(e.Hostname, "."), e.URL())
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (e *Endpoint) GetMetadata(key string) string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata[key]
}
