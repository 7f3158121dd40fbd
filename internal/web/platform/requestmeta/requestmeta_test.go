package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  *http.Request
		want bool
	}{
		{
			name: "nil request",
			req:  nil,
			want: false,
		},
		{
			name: "plain http",
			req:  httptest.NewRequest(http.MethodGet, "http://example.test/", nil),
			want: false,
		},
		{
			name: "tls connection",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "https://example.test/", nil)
				req.TLS = &tls.ConnectionState{}
				return req
			}(),
			want: true,
		},
		{
			name: "forwarded proto https",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "http://example.test/", nil)
				req.TLS = nil
				req.Header.Set("X-Forwarded-Proto", "https")
				return req
			}(),
			want: true,
		},
		{
			name: "forwarded proto list keeps first hop",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "http://example.test/", nil)
				req.TLS = nil
				req.Header.Set("X-Forwarded-Proto", "https, http")
				return req
			}(),
			want: true,
		},
		{
			name: "forwarded proto http",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "http://example.test/", nil)
				req.TLS = nil
				req.Header.Set("X-Forwarded-Proto", "http")
				return req
			}(),
			want: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsHTTPS(tc.req); got != tc.want {
				t.Fatalf("IsHTTPS() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://example.test/", nil)
	req.RemoteAddr = "10.0.0.9:5123"
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if got := ClientIP(req); got != "198.51.100.7" {
		t.Fatalf("ClientIP() = %q, want %q", got, "198.51.100.7")
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://example.test/", nil)
	req.RemoteAddr = "192.0.2.4:2211"
	if got := ClientIP(req); got != "192.0.2.4" {
		t.Fatalf("ClientIP() = %q, want %q", got, "192.0.2.4")
	}
}
