package xhttp

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	go_json "github.com/goccy/go-json"
)

const maxRequestBodyBytes = 1 << 20

// GetRequestIP returns the client address: the first X-Forwarded-For hop when
// a proxy set one, otherwise the connection's remote host.
func GetRequestIP(r *http.Request) string {
	if xff := r.Header.Get(XForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := hostOnly(strings.TrimSpace(first)); ip != "" {
			return ip
		}
	}
	return hostOnly(r.RemoteAddr)
}

func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}

// DecodeJSON decodes a bounded JSON request body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := go_json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}
