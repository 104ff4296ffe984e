package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when the resolver is not initialized.
var ErrUnavailable = errors.New("geoip resolver unavailable")

// CountryResolver resolves ISO country codes from IP addresses.
type CountryResolver interface {
	CountryCode(ip string) (string, error)
}

// Resolver provides country lookups backed by a MaxMind GeoIP2 database.
type Resolver struct {
	reader *geoip2.Reader
}

// Open opens the GeoIP database at path. An empty path yields (nil, nil) so
// callers can treat the lookup as optional.
func Open(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// CountryCode returns the ISO country code for the provided IP.
func (r *Resolver) CountryCode(ip string) (string, error) {
	if r == nil || r.reader == nil {
		return "", ErrUnavailable
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup country: %w", err)
	}
	if record == nil || record.Country.IsoCode == "" {
		return "", nil
	}
	return record.Country.IsoCode, nil
}

// Close closes the underlying database reader.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}

// Cache memoizes country lookups per IP. Once full it is reset wholesale.
type Cache struct {
	next CountryResolver
	max  int

	mu      sync.Mutex
	entries map[string]string
}

// NewCache wraps next with a cache holding up to max addresses.
func NewCache(next CountryResolver, max int) *Cache {
	if max <= 0 {
		max = 4096
	}
	return &Cache{next: next, max: max, entries: make(map[string]string)}
}

func (c *Cache) CountryCode(ip string) (string, error) {
	if c == nil || c.next == nil {
		return "", ErrUnavailable
	}
	c.mu.Lock()
	code, ok := c.entries[ip]
	c.mu.Unlock()
	if ok {
		return code, nil
	}

	code, err := c.next.CountryCode(ip)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	if len(c.entries) >= c.max {
		c.entries = make(map[string]string)
	}
	c.entries[ip] = code
	c.mu.Unlock()
	return code, nil
}

var (
	_ CountryResolver = (*Resolver)(nil)
	_ CountryResolver = (*Cache)(nil)
)
