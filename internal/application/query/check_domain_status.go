package query

import (
	"context"
	"strings"

	"github.com/solopage/solopage-backend/internal/application/dto"
	"github.com/solopage/solopage-backend/internal/application/interfaces"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/dns"
)

// CheckDomainStatus runs the diagnostic nameserver check for a custom
// domain. Publish state is ignored on purpose: owners need DNS feedback
// before going live.
type CheckDomainStatus struct {
	repo    interfaces.WebsiteRepo
	checker *dns.Checker
}

func NewCheckDomainStatus(repo interfaces.WebsiteRepo, checker *dns.Checker) *CheckDomainStatus {
	return &CheckDomainStatus{repo: repo, checker: checker}
}

func (q *CheckDomainStatus) Query(ctx context.Context, domain string) (dto.DomainStatusResponse, error) {
	domain = strings.ToLower(domain)
	website, err := q.repo.FindByCustomDomain(ctx, domain)
	if err != nil {
		return dto.DomainStatusResponse{}, err
	}
	if website == nil {
		return dto.DomainStatusResponse{
			Status:  consts.DNSStatusNotFound,
			Message: "Domain not found in our system",
		}, nil
	}

	ref := &dto.WebsiteRef{ID: website.ID, Title: website.Title, Slug: website.Slug}
	result := q.checker.Check(ctx, domain)
	switch result.Status {
	case consts.DNSStatusConfigured:
		return dto.DomainStatusResponse{
			Status:             result.Status,
			Message:            "Domain is properly configured with the platform nameservers",
			CurrentNameservers: result.Nameservers,
			Website:            ref,
		}, nil
	case consts.DNSStatusNotConfigured:
		return dto.DomainStatusResponse{
			Status:              result.Status,
			Message:             "Domain nameservers are not pointing to the platform. Please add the required nameservers in your domain provider.",
			CurrentNameservers:  result.Nameservers,
			RequiredNameservers: result.Required,
			Website:             ref,
		}, nil
	default:
		return dto.DomainStatusResponse{
			Status:  consts.DNSStatusError,
			Message: "Unable to check DNS configuration. Please ensure the domain is properly configured.",
			Website: ref,
		}, nil
	}
}
