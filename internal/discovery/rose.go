package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// SharedRose is a rose card found on the local network
type SharedRose struct {
	// Instance is the advertised instance name (e.g., "Rose for Alex")
	Instance string

	// Name and Style come from the TXT record
	Name  string
	Style string

	// Path is the card path on the share server, "/" by default
	Path string

	// Host is the mDNS hostname of the sharing machine
	Host string

	// IP prefers IPv4 when the entry has both
	IP   string
	Port int

	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the rose
func (r *SharedRose) String() string {
	return fmt.Sprintf("%s (%s) at %s", r.Instance, r.Style, net.JoinHostPort(r.IP, strconv.Itoa(r.Port)))
}

// URL returns the card address in a browser
func (r *SharedRose) URL() string {
	path := r.Path
	if path == "" {
		path = "/"
	}
	return "http://" + net.JoinHostPort(r.IP, strconv.Itoa(r.Port)) + path
}
