// Package geoip resolves visitor IP addresses to ISO country codes using a
// MaxMind GeoLite2 database. GeoIP is optional: a nil *Locator answers every
// lookup with "".
package geoip

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrGeoDBUnavailable is returned when no usable database exists at the configured path.
var ErrGeoDBUnavailable = errors.New("geoip database unavailable")

// Locator looks up countries by IP address.
type Locator struct {
	reader *geoip2.Reader
	logger *slog.Logger
}

// Open loads the GeoLite2 database at path.
func Open(path string, logger *slog.Logger) (*Locator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no path configured", ErrGeoDBUnavailable)
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeoDBUnavailable, err)
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeoDBUnavailable, err)
	}

	logger.Debug("GeoIP database opened",
		slog.String("path", path),
		slog.Int64("size_bytes", fileInfo.Size()),
		slog.Time("mod_time", fileInfo.ModTime()))

	return &Locator{reader: reader, logger: logger}, nil
}

// CountryCode returns the ISO 3166-1 alpha-2 code for raw, or "" when the
// address is unparsable, private, or unknown to the database.
func (l *Locator) CountryCode(raw string) string {
	if l == nil || l.reader == nil {
		return ""
	}

	_, ip := NormalizeIP(raw)
	if ip == nil || isPrivateIP(ip) {
		return ""
	}

	country, err := l.reader.Country(ip)
	if err != nil {
		l.logger.Debug("GeoIP lookup failed", slog.String("ip", raw), slog.Any("error", err))
		return ""
	}
	return country.Country.IsoCode
}

// Close releases the database.
func (l *Locator) Close() error {
	if l == nil || l.reader == nil {
		return nil
	}
	return l.reader.Close()
}

// NormalizeIP strips quotes, ports and zone identifiers and unmaps
// IPv4-in-IPv6 addresses. It returns "" and nil for anything unparsable.
func NormalizeIP(raw string) (string, net.IP) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"")
	if clean == "" {
		return "", nil
	}

	if percent := strings.Index(clean, "%"); percent != -1 {
		clean = clean[:percent]
	}

	if addrPort, err := netip.ParseAddrPort(clean); err == nil {
		return fromAddr(addrPort.Addr())
	}

	trimmed := strings.TrimSuffix(strings.TrimPrefix(clean, "["), "]")
	if addr, err := netip.ParseAddr(trimmed); err == nil {
		return fromAddr(addr)
	}

	if host, _, err := net.SplitHostPort(clean); err == nil {
		return NormalizeIP(host)
	}

	return "", nil
}

func fromAddr(addr netip.Addr) (string, net.IP) {
	if addr.Is4In6() {
		addr = addr.Unmap()
	}
	ipStr := addr.String()
	return ipStr, net.ParseIP(ipStr)
}

var privateIPBlocks = []*net.IPNet{
	parseCIDR("10.0.0.0/8"),
	parseCIDR("172.16.0.0/12"),
	parseCIDR("192.168.0.0/16"),
	parseCIDR("fc00::/7"),
	parseCIDR("fe80::/10"),
	parseCIDR("::1/128"),
	parseCIDR("127.0.0.0/8"),
}

func isPrivateIP(ip net.IP) bool {
	for _, block := range privateIPBlocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

func parseCIDR(s string) *net.IPNet {
	_, block, _ := net.ParseCIDR(s)
	return block
}
