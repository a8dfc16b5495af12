package config

import (
	"strings"

	"github.com/solopage/solopage-backend/pkg/env"
)

// TenantDomain describes one root domain under which website subdomains are
// allocated.
type TenantDomain struct {
	Name        string
	DisplayName string
}

// TenantConfig is the static host classification table. It is built once at
// startup and passed to every component that classifies hosts; nothing mutates
// it afterwards.
type TenantConfig struct {
	RootDomains        map[string]TenantDomain
	ReservedSubdomains map[string]struct{}
	PreviewSuffixes    []string
	Nameservers        []string
}

// Reserved subdomain labels that must never resolve as website slugs.
var reservedSubdomains = []string{
	"www", "api", "admin", "mail", "ftp", "blog", "shop", "store",
	"support", "help", "docs", "status", "cdn", "static", "assets",
	"app", "dashboard", "login", "register", "auth",
}

// Hosts with these suffixes are deployment previews or loopback, never
// tenant traffic.
var previewSuffixes = []string{
	"localhost", "127.0.0.1", "vercel.app", "netlify.app", "vercel-dns.com",
}

var platformNameservers = []string{
	"ns1.vercel-dns.com",
	"ns2.vercel-dns.com",
	"ns3.vercel-dns.com",
	"ns4.vercel-dns.com",
}

func NewTenantConfig() *TenantConfig {
	roots := strings.Split(env.GetEnv("TENANT_ROOT_DOMAINS", "solopage.com,jirocash.com,mywebsitebuilder.com"), ",")
	rootDomains := make(map[string]TenantDomain, len(roots))
	for _, root := range roots {
		root = strings.ToLower(strings.TrimSpace(root))
		if root == "" {
			continue
		}
		rootDomains[root] = TenantDomain{
			Name:        root,
			DisplayName: root,
		}
	}
	reserved := make(map[string]struct{}, len(reservedSubdomains))
	for _, sub := range reservedSubdomains {
		reserved[sub] = struct{}{}
	}
	return &TenantConfig{
		RootDomains:        rootDomains,
		ReservedSubdomains: reserved,
		PreviewSuffixes:    previewSuffixes,
		Nameservers:        platformNameservers,
	}
}

func (c *TenantConfig) IsRootDomain(host string) bool {
	_, ok := c.RootDomains[host]
	return ok
}

func (c *TenantConfig) IsReserved(subdomain string) bool {
	_, ok := c.ReservedSubdomains[subdomain]
	return ok
}

func (c *TenantConfig) IsPreviewHost(host string) bool {
	for _, suffix := range c.PreviewSuffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}
