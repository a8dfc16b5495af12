package dns

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/config"
)

const lookupTimeout = 5 * time.Second

// Checker performs nameserver lookups for candidate custom domains and
// classifies their configuration state. It is purely diagnostic: it never
// blocks a publish or save, and repeated checks have no side effects.
type Checker struct {
	required []string
	lookupNS func(ctx context.Context, domain string) ([]*net.NS, error)
}

type Result struct {
	Status      consts.DNSStatus
	Nameservers []string
	Required    []string
}

func NewChecker(cfg *config.TenantConfig) *Checker {
	resolver := &net.Resolver{}
	return &Checker{
		required: cfg.Nameservers,
		lookupNS: resolver.LookupNS,
	}
}

// Check resolves NS records for domain and reports whether any of the
// platform's canonical nameservers is present. Lookup failures classify as
// a dns_error result, never as a hard failure.
func (c *Checker) Check(ctx context.Context, domain string) Result {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	records, err := c.lookupNS(ctx, domain)
	if err != nil {
		slog.Info("nameserver lookup failed", "domain", domain, "err", err)
		return Result{Status: consts.DNSStatusError, Required: c.required}
	}

	nameservers := make([]string, 0, len(records))
	for _, ns := range records {
		nameservers = append(nameservers, strings.TrimSuffix(ns.Host, "."))
	}

	for _, found := range nameservers {
		for _, want := range c.required {
			if strings.Contains(strings.ToLower(found), strings.ToLower(want)) {
				return Result{
					Status:      consts.DNSStatusConfigured,
					Nameservers: nameservers,
					Required:    c.required,
				}
			}
		}
	}

	return Result{
		Status:      consts.DNSStatusNotConfigured,
		Nameservers: nameservers,
		Required:    c.required,
	}
}
