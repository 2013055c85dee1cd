package helpers

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the address of the caller. X-Forwarded-For is only honoured
// when the direct peer is one of the trusted proxies (IPs or CIDRs).
func ClientIP(r *http.Request, trustedProxies []string) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}

	if !isTrusted(remote, trustedProxies) {
		return remote
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return remote
	}

	hops := strings.Split(forwarded, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !isTrusted(hop, trustedProxies) || i == 0 {
			return hop
		}
	}
	return remote
}

func isTrusted(address string, trustedProxies []string) bool {
	ip := net.ParseIP(address)
	if ip == nil {
		return false
	}
	for _, proxy := range trustedProxies {
		if strings.Contains(proxy, "/") {
			_, network, err := net.ParseCIDR(proxy)
			if err == nil && network.Contains(ip) {
				return true
			}
			continue
		}
		if trusted := net.ParseIP(proxy); trusted != nil && trusted.Equal(ip) {
			return true
		}
	}
	return false
}
