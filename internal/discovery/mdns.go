package discovery

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/tapcalc/internal/logging"
)

const (
	// ServiceType is the mDNS service type evaluation endpoints advertise
	ServiceType = "_calculate._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for endpoint discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is used when an entry carries no port
	DefaultPort = 5000

	// DefaultPath is used when the TXT record carries no path
	DefaultPath = "/calculate"
)

// ErrNotFound is returned by First when no endpoint answers in time
var ErrNotFound = errors.New("no endpoint found")

// Scanner handles mDNS endpoint discovery
type Scanner struct {
	Service string
	Domain  string

	// Timeout is the maximum time to wait for discovery
	Timeout time.Duration

	now func() time.Time
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Service: ServiceType,
		Domain:  ServiceDomain,
		Timeout: DefaultScanTimeout,
		now:     time.Now,
	}
}

// Scan browses for endpoints until the timeout or ctx ends and returns
// everything found, de-duplicated by URL.
func (s *Scanner) Scan(ctx context.Context) ([]*Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu        sync.Mutex
		endpoints []*Endpoint
		seen      = make(map[string]bool)
	)

	err := s.browse(ctx, func(ep *Endpoint) bool {
		mu.Lock()
		defer mu.Unlock()
		if !seen[ep.URL()] {
			seen[ep.URL()] = true
			endpoints = append(endpoints, ep)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	return endpoints, nil
}

// First returns the first endpoint that answers, or an error if none does
// within the timeout.
func (s *Scanner) First(ctx context.Context) (*Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	found := make(chan *Endpoint, 1)
	err := s.browse(ctx, func(ep *Endpoint) bool {
		select {
		case found <- ep:
		default:
		}
		cancel()
		return false
	})
	if err != nil {
		return nil, err
	}

	select {
	case ep := <-found:
		return ep, nil
	default:
		return nil, errors.Wrapf(ErrNotFound, "%s within %s", s.Service, s.Timeout)
	}
}

// browse runs the resolver until ctx ends, handing each parsed entry to fn.
// It returns once the entry consumer has drained.
func (s *Scanner) browse(ctx context.Context, fn func(*Endpoint) bool) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return errors.Wrap(err, "failed to create mDNS resolver")
	}

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for entry := range entries {
			ep := s.parseServiceEntry(entry)
			if ep == nil {
				continue
			}
			logging.Debug("Discovered endpoint", zap.String("instance", ep.Instance), zap.String("url", ep.URL()))
			if !fn(ep) {
				// keep draining so the resolver never blocks
				fn = func(*Endpoint) bool { return false }
			}
		}
	}()

	if err := resolver.Browse(ctx, s.Service, s.Domain, entries); err != nil {
		return errors.Wrap(err, "failed to browse for mDNS services")
	}

	<-ctx.Done()
	// zeroconf closes entries after ctx ends
	<-done
	return nil
}

// parseServiceEntry converts a zeroconf service entry to an Endpoint.
// Returns nil if the entry has no usable address.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Endpoint {
	if entry == nil {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	}
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

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	path := metadata["path"]
	switch {
	case path == "" || path == "/":
		path = DefaultPath
	case !strings.HasPrefix(path, "/"):
		path = "/" + path
	}

	return &Endpoint{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Path:         path,
		Metadata:     metadata,
		DiscoveredAt: s.now(),
	}
}
