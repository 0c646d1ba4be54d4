package xhttp

import (
	"net/http"
	"testing"
)

func TestGetRequestIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{name: "remote host and port", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "remote host only", remoteAddr: "192.0.2.1", want: "192.0.2.1"},
		{name: "remote ipv6", remoteAddr: "[2001:db8::1]:1234", want: "2001:db8::1"},
		{name: "remote bare bracketed ipv6", remoteAddr: "[::1]", want: "::1"},
		{name: "empty", want: ""},
		{name: "forwarded wins", forwarded: "203.0.113.195", remoteAddr: "10.0.0.2:80", want: "203.0.113.195"},
		{name: "forwarded with port", forwarded: "203.0.113.195:8080", remoteAddr: "10.0.0.2:80", want: "203.0.113.195"},
		{name: "forwarded chain uses client hop", forwarded: "198.51.100.7, 10.0.0.1, 10.0.0.2", remoteAddr: "10.0.0.3:80", want: "198.51.100.7"},
		{name: "forwarded ipv6 with port", forwarded: "[2001:db8::1]:8080", remoteAddr: "10.0.0.2:80", want: "2001:db8::1"},
		{name: "blank forwarded falls back", forwarded: " , 10.0.0.1", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://example.com", nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}
			if tt.forwarded != "" {
				req.Header.Set(XForwardedFor, tt.forwarded)
			}
			req.RemoteAddr = tt.remoteAddr

			if got := GetRequestIP(req); got != tt.want {
				t.Errorf("GetRequestIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer mdy_abc", want: "mdy_abc"},
		{name: "lowercase scheme", header: "bearer mdy_abc", want: "mdy_abc"},
		{name: "surrounding space", header: "Bearer   mdy_abc  ", want: "mdy_abc"},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", want: ""},
		{name: "scheme only", header: "Bearer", want: ""},
		{name: "missing", header: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://example.com", nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}
			if tt.header != "" {
				req.Header.Set(Authorization, tt.header)
			}

			if got := GetBearerToken(req); got != tt.want {
				t.Errorf("GetBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
