package utils

import (
	"net"
	"net/http"
)

// ClientIP returns the host part of r.RemoteAddr. Proxy headers are expected
// to be resolved by chi's RealIP middleware before this is called.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
