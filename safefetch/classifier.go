package safefetch

import (
	"context"
	"net"
	"net/url"
	"sort"
	"strings"
)

// Resolver returns the full set of A/AAAA addresses for a hostname.
type Resolver interface {
	LookupIP(ctx context.Context, host string) ([]net.IP, error)
}

type netResolver struct{}

func (netResolver) LookupIP(ctx context.Context, host string) ([]net.IP, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	ips := make([]net.IP, len(addrs))
	for i, a := range addrs {
		ips[i] = a.IP
	}
	return ips, nil
}

// Decision is the result of classifying a URL. When Allowed is true, IP holds
// the lowest-sorted public address the hostname resolved to.
type Decision struct {
	Allowed bool
	IP      string
	Reason  string
}

func denied(reason string) Decision {
	return Decision{Reason: reason}
}

type Classifier struct {
	resolver Resolver
}

func NewClassifier(resolver Resolver) Classifier {
	if resolver == nil {
		resolver = netResolver{}
	}
	return Classifier{resolver: resolver}
}

// Classify decides whether rawURL is safe to fetch. Only http(s) URLs whose
// hostname resolves exclusively to public addresses are allowed; everything
// else, including any resolution failure, is denied.
func (c Classifier) Classify(ctx context.Context, rawURL string) Decision {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return denied("некорректный URL")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return denied("допускаются только схемы http и https")
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return denied("пустое имя хоста")
	}

	// Known loopback aliases are rejected before any resolution so a
	// resolver that maps them elsewhere cannot be abused.
	switch strings.ToLower(hostname) {
	case "localhost", "localhost.localdomain":
		return denied("loopback-хост запрещён")
	}

	if ip := net.ParseIP(hostname); ip != nil {
		if !isPublicIP(ip) {
			return denied("адрес не является публичным")
		}
		return Decision{Allowed: true, IP: ip.String()}
	}

	ips, err := c.resolver.LookupIP(ctx, hostname)
	if err != nil || len(ips) == 0 {
		return denied("не удалось разрешить имя хоста")
	}

	// Every resolved address must be public: a single private answer mixed
	// into the set denies the whole host.
	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		if !isPublicIP(ip) {
			return denied("хост разрешается в непубличный адрес")
		}
		addrs = append(addrs, ip.String())
	}

	sort.Strings(addrs)
	return Decision{Allowed: true, IP: addrs[0]}
}

// reservedNets lists reserved ranges that net.IP has no predicate for. The
// NAT64 prefix embeds arbitrary IPv4 addresses, loopback included, so it must
// be denied as a whole.
var reservedNets = func() []*net.IPNet {
	cidrs := []string{
		"240.0.0.0/4",   // IPv4 reserved for future use
		"64:ff9b::/96",  // NAT64 well-known prefix
		"100::/64",      // discard-only
		"2001::/23",     // IETF protocol assignments
		"2001:db8::/32", // documentation
	}
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}()

func isPublicIP(ip net.IP) bool {
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	switch {
	case ip.IsLoopback(),
		ip.IsPrivate(),
		ip.IsLinkLocalUnicast(),
		ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(),
		ip.IsUnspecified(),
		ip.IsMulticast():
		return false
	}
	for _, n := range reservedNets {
		if n.Contains(ip) {
			return false
		}
	}
	return true
}
