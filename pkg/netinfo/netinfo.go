package netinfo

import (
	"net"
	"net/http"
	"strings"
)

// ClientInfo describes the caller address recorded on audit rows.
type ClientInfo struct {
	IP        string
	IPVersion string
}

// FromRequest derives the caller IP and IP version from request headers,
// preferring X-Forwarded-For, then X-Real-IP, then the socket address.
func FromRequest(r *http.Request) ClientInfo {
	ip := firstForwarded(r.Header.Get("X-Forwarded-For"))
	if ip == "" {
		ip = strings.TrimSpace(r.Header.Get("X-Real-IP"))
	}
	if ip == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		ip = host
	}
	return ClientInfo{IP: ip, IPVersion: Version(ip)}
}

// Version reports "v4" or "v6" for the given address, empty when unparseable.
func Version(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return ""
	}
	if parsed.To4() != nil {
		return "v4"
	}
	return "v6"
}

func firstForwarded(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Split(header, ",")
	return strings.TrimSpace(parts[0])
}
