package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/roseday/internal/logging"
)

const (
	// ServiceType is the mDNS service type shared roses advertise under
	ServiceType = "_roseday._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default browse duration
	DefaultScanTimeout = 5 * time.Second

	// instancePrefix starts every advertised instance name
	instancePrefix = "Rose for "
)

// InstanceName returns the advertised instance for a recipient
func InstanceName(name string) string {
	return instancePrefix + name
}

// TXTRecords builds the TXT record of an advertisement
func TXTRecords(name, style, path string) []string {
	if path == "" {
		path = "/"
	}
	return []string{"name=" + name, "style=" + style, "path=" + path}
}

// Scanner browses the local network for shared roses
type Scanner struct {
	// Timeout is how long to listen for answers
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Scan collects every rose answering within the timeout, sorted by
// instance name
func (s *Scanner) Scan(ctx context.Context) ([]*SharedRose, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu    sync.Mutex
		seen  = make(map[string]*SharedRose)
		done  = make(chan struct{})
		entry = make(chan *zeroconf.ServiceEntry)
	)

	go func() {
		defer close(done)
		for e := range entry {
			rose := parseServiceEntry(e)
			if rose == nil {
				continue
			}
			logging.Debug("Found shared rose",
				zap.String("instance", rose.Instance),
				zap.String("addr", rose.URL()),
			)
			mu.Lock()
			seen[rose.Instance+"@"+rose.IP] = rose
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entry); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// the resolver closes the channel once the context ends
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	roses := make([]*SharedRose, 0, len(seen))
	for _, r := range seen {
		roses = append(roses, r)
	}
	sort.Slice(roses, func(i, j int) bool {
		if roses[i].Instance != roses[j].Instance {
			return roses[i].Instance < roses[j].Instance
		}
		return roses[i].IP < roses[j].IP
	})
	return roses, nil
}

// parseServiceEntry converts a zeroconf service entry to a SharedRose.
// Returns nil for entries without an address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *SharedRose {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port == 0 {
		return nil
	}

	txt := make(map[string]string)
	for _, record := range entry.Text {
		k, v, _ := strings.Cut(record, "=")
		txt[k] = v
	}

	instance := strings.ReplaceAll(entry.Instance, `\ `, " ")
	name := txt["name"]
	if name == "" {
		name = strings.TrimPrefix(instance, instancePrefix)
	}

	return &SharedRose{
		Instance:     instance,
		Name:         name,
		Style:        txt["style"],
		Path:         txt["path"],
		Host:         entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		DiscoveredAt: time.Now(),
	}
}

// Advertisement is a registered mDNS service
type Advertisement struct {
	server *zeroconf.Server
}

// Advertise registers a shared rose on every interface until Shutdown
func Advertise(name, style string, port int) (*Advertisement, error) {
	server, err := zeroconf.Register(InstanceName(name), ServiceType, ServiceDomain, port, TXTRecords(name, style, "/"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("Advertising rose",
		zap.String("instance", InstanceName(name)),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the advertisement
func (a *Advertisement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
}
