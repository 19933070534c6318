package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

type resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// DomainChecker rejects sign-ups whose address domain cannot receive mail,
// since the approval flow depends on a reset link reaching the user.
type DomainChecker struct {
	resolver resolver
	timeout  time.Duration
}

func NewDomainChecker() *DomainChecker {
	return &DomainChecker{resolver: net.DefaultResolver, timeout: lookupTimeout}
}

func (d *DomainChecker) Valid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if mx, err := d.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := d.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

var defaultChecker = NewDomainChecker()

func IsEmailDomainValid(email string) bool {
	return defaultChecker.Valid(email)
}
