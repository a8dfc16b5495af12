package slug

import (
	"regexp"
	"strings"

	"github.com/solopage/solopage-backend/internal/infra/config"
)

const (
	minLength = 3
	maxLength = 63
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	stripPattern = regexp.MustCompile(`[^a-z0-9-]`)
)

// Normalize lowercases raw and strips every character outside [a-z0-9-].
func Normalize(raw string) string {
	return stripPattern.ReplaceAllString(strings.ToLower(raw), "")
}

type ValidationFailure string

const (
	FailureNone          ValidationFailure = ""
	FailureTooShort      ValidationFailure = "too_short"
	FailureTooLong       ValidationFailure = "too_long"
	FailureInvalidFormat ValidationFailure = "invalid_format"
	FailureReserved      ValidationFailure = "reserved"
)

// Validate checks a slug against length, charset and the reserved list.
// The pattern rejects leading/trailing hyphens and consecutive hyphens.
func Validate(s string, cfg *config.TenantConfig) ValidationFailure {
	if len(s) < minLength {
		return FailureTooShort
	}
	if len(s) > maxLength {
		return FailureTooLong
	}
	if !slugPattern.MatchString(s) {
		return FailureInvalidFormat
	}
	if cfg.IsReserved(s) {
		return FailureReserved
	}
	return FailureNone
}

type HostKind int

const (
	HostRootDomain HostKind = iota
	HostReservedSubdomain
	HostTenantSubdomain
	HostForeignDomain
)

type HostClass struct {
	Kind  HostKind
	Label string
}

// ClassifyHost maps an incoming Host header to a host class. Ports are
// stripped and matching is case-insensitive. A host with no dots is never a
// tenant subdomain.
func ClassifyHost(host string, cfg *config.TenantConfig) HostClass {
	host = strings.ToLower(host)
	if i := strings.LastIndex(host, ":"); i != -1 {
		host = host[:i]
	}
	host = strings.TrimSuffix(host, ".")

	// loopback and PaaS preview hosts serve the application itself
	if cfg.IsPreviewHost(host) {
		return HostClass{Kind: HostRootDomain}
	}
	if cfg.IsRootDomain(host) {
		return HostClass{Kind: HostRootDomain}
	}

	label, suffix, found := strings.Cut(host, ".")
	if found && cfg.IsRootDomain(suffix) {
		if cfg.IsReserved(label) {
			return HostClass{Kind: HostReservedSubdomain, Label: label}
		}
		return HostClass{Kind: HostTenantSubdomain, Label: label}
	}

	// deeper labels under a configured root (a.b.root.com) are not tenant
	// subdomains, serve the application
	for root := range cfg.RootDomains {
		if strings.HasSuffix(host, "."+root) {
			return HostClass{Kind: HostRootDomain}
		}
	}

	if !found {
		// single label, ambiguous
		return HostClass{Kind: HostRootDomain}
	}

	return HostClass{Kind: HostForeignDomain, Label: host}
}
