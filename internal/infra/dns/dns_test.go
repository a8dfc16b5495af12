package dns

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/config"
	"github.com/stretchr/testify/require"
)

func newChecker(lookup func(ctx context.Context, domain string) ([]*net.NS, error)) *Checker {
	checker := NewChecker(config.NewTenantConfig())
	checker.lookupNS = lookup
	return checker
}

func nsRecords(hosts ...string) []*net.NS {
	records := make([]*net.NS, 0, len(hosts))
	for _, host := range hosts {
		records = append(records, &net.NS{Host: host})
	}
	return records
}

func TestCheckConfiguredWhenPlatformNameserverPresent(t *testing.T) {
	checker := newChecker(func(context.Context, string) ([]*net.NS, error) {
		return nsRecords("NS1.VERCEL-DNS.COM.", "ns.other.net."), nil
	})

	result := checker.Check(context.Background(), "foo.com")
	require.Equal(t, consts.DNSStatusConfigured, result.Status)
	require.Contains(t, result.Nameservers, "NS1.VERCEL-DNS.COM")
}

func TestCheckNotConfiguredReportsBothLists(t *testing.T) {
	checker := newChecker(func(context.Context, string) ([]*net.NS, error) {
		return nsRecords("ns1.registrar.net.", "ns2.registrar.net."), nil
	})

	result := checker.Check(context.Background(), "foo.com")
	require.Equal(t, consts.DNSStatusNotConfigured, result.Status)
	require.Equal(t, []string{"ns1.registrar.net", "ns2.registrar.net"}, result.Nameservers)
	require.Len(t, result.Required, 4)
}

func TestCheckLookupFailureIsNonFatal(t *testing.T) {
	checker := newChecker(func(context.Context, string) ([]*net.NS, error) {
		return nil, errors.New("NXDOMAIN")
	})

	result := checker.Check(context.Background(), "doesnotexist.example")
	require.Equal(t, consts.DNSStatusError, result.Status)
}

func TestCheckIsIdempotent(t *testing.T) {
	calls := 0
	checker := newChecker(func(context.Context, string) ([]*net.NS, error) {
		calls++
		return nsRecords("ns2.vercel-dns.com."), nil
	})

	first := checker.Check(context.Background(), "foo.com")
	second := checker.Check(context.Background(), "foo.com")
	require.Equal(t, first, second)
	require.Equal(t, 2, calls)
}
