package safefetch_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"artauction/safefetch"

	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	ips map[string][]net.IP
	err error
}

func (f fakeResolver) LookupIP(_ context.Context, host string) ([]net.IP, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ips[host], nil
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name        string
		resolver    fakeResolver
		url         string
		wantAllowed bool
		wantIP      string
	}{
		{
			name: "Public host allowed",
			resolver: fakeResolver{ips: map[string][]net.IP{
				"example.com": {net.ParseIP("93.184.216.34")},
			}},
			url:         "http://example.com/art.json",
			wantAllowed: true,
			wantIP:      "93.184.216.34",
		},
		{
			name: "Lowest address reported for multi-homed host",
			resolver: fakeResolver{ips: map[string][]net.IP{
				"example.com": {
					net.ParseIP("93.184.216.34"),
					net.ParseIP("151.101.1.140"),
				},
			}},
			url:         "https://example.com/",
			wantAllowed: true,
			wantIP:      "151.101.1.140",
		},
		{
			name: "Private host denied",
			resolver: fakeResolver{ips: map[string][]net.IP{
				"intranet.local": {net.ParseIP("192.168.1.5")},
			}},
			url: "http://intranet.local/secrets",
		},
		{
			name: "Mixed public and private denied",
			resolver: fakeResolver{ips: map[string][]net.IP{
				"rebind.example": {
					net.ParseIP("93.184.216.34"),
					net.ParseIP("10.0.0.1"),
				},
			}},
			url: "http://rebind.example/",
		},
		{
			name: "Loopback IPv6 answer denied",
			resolver: fakeResolver{ips: map[string][]net.IP{
				"sneaky.example": {net.ParseIP("::1")},
			}},
			url: "http://sneaky.example/",
		},
		{
			name: "NAT64 answer denied",
			resolver: fakeResolver{ips: map[string][]net.IP{
				"nat64.example": {net.ParseIP("64:ff9b::a00:1")},
			}},
			url: "http://nat64.example/",
		},
		{
			name:        "Public literal IP allowed without resolution",
			resolver:    fakeResolver{err: errors.New("resolver must not be called")},
			url:         "http://93.184.216.34/art.json",
			wantAllowed: true,
			wantIP:      "93.184.216.34",
		},
		{name: "Loopback literal denied", url: "http://127.0.0.1/admin"},
		{name: "Private literal denied", url: "http://10.0.0.1/"},
		{name: "Link-local literal denied", url: "http://169.254.169.254/latest/meta-data"},
		{name: "Unspecified literal denied", url: "http://0.0.0.0/"},
		{name: "Reserved block literal denied", url: "http://240.0.0.1/"},
		{name: "IPv6 loopback literal denied", url: "http://[::1]/"},
		{name: "IPv6 documentation literal denied", url: "http://[2001:db8::1]/"},
		{name: "IPv6 IETF-reserved literal denied", url: "http://[2001::1]/"},
		{name: "IPv6 discard-only literal denied", url: "http://[100::1]/"},
		{name: "NAT64-embedded loopback denied", url: "http://[64:ff9b::7f00:1]/"},
		{name: "IPv6 unique-local literal denied", url: "http://[fc00::1]/"},
		{name: "Localhost denied", url: "http://localhost/admin"},
		{name: "Localhost case-insensitive", url: "http://LocalHost:8080/"},
		{name: "localhost.localdomain denied", url: "http://localhost.localdomain/"},
		{name: "File scheme denied", url: "file:///etc/passwd"},
		{name: "Gopher scheme denied", url: "gopher://example.com/"},
		{name: "Scheme-less URL denied", url: "example.com/art.json"},
		{name: "Empty host denied", url: "http:///path"},
		{
			name:     "Resolver failure denied",
			resolver: fakeResolver{err: errors.New("no such host")},
			url:      "http://unknown.example/",
		},
		{
			name:     "Empty answer set denied",
			resolver: fakeResolver{ips: map[string][]net.IP{}},
			url:      "http://empty.example/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := safefetch.NewClassifier(tt.resolver)
			decision := c.Classify(context.Background(), tt.url)
			require.Equal(t, tt.wantAllowed, decision.Allowed)
			if tt.wantAllowed {
				require.Equal(t, tt.wantIP, decision.IP)
			} else {
				require.NotEmpty(t, decision.Reason)
			}
		})
	}
}
