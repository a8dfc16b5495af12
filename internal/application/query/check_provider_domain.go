package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/solopage/solopage-backend/internal/application/dto"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/client/vercel"
	"github.com/solopage/solopage-backend/internal/infra/db/repo"
	dbs "github.com/solopage/solopage-backend/pkg/db"
)

// CheckProviderDomain polls the edge provider for a domain's verification
// state and syncs it onto the website record. When the provider does not
// know the domain on this project, the global domain list decides whether it
// is held by another project.
type CheckProviderDomain struct {
	uowFactory *dbs.UOWFactory
	cfg        *vercel.VercelConfig
	client     *vercel.Client
}

func NewCheckProviderDomain(factory *dbs.UOWFactory, cfg *vercel.VercelConfig, client *vercel.Client) *CheckProviderDomain {
	return &CheckProviderDomain{uowFactory: factory, cfg: cfg, client: client}
}

func (q *CheckProviderDomain) Query(ctx context.Context, domain string, identity *auth.Identity) (*dto.ProviderDomainResponse, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if !q.cfg.Configured() {
		return nil, errs.ConfigurationError{Message: "domain provider credentials are not configured"}
	}

	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	r := repo.NewWebsiteRepo(tx)
	website, err := r.FindByCustomDomainAndOwner(ctx, domain, identity.UserID)
	if err != nil {
		return nil, err
	}
	if website == nil {
		err = errs.NotFoundError{Resource: "Domain"}
		return nil, err
	}

	verification, err := q.client.GetVerificationState(ctx, domain)
	if err != nil {
		err = errs.ProviderError{Kind: errs.ProviderUnreachable, Err: err}
		return nil, err
	}

	if verification.Found {
		if err = r.UpdateDomainRegistration(ctx, website.ID, verification.State, nil); err != nil {
			return nil, err
		}
		message := "Domain verification pending"
		if verification.State == consts.DomainStatusValid {
			message = "Domain is active"
		}
		return &dto.ProviderDomainResponse{
			Domain: &dto.ProviderDomainInfo{
				Name:                   domain,
				ProjectID:              q.cfg.ProjectID,
				AssignedToOtherProject: false,
			},
			Status:  string(verification.State),
			Message: message,
		}, nil
	}

	ownership, lookupErr := q.client.FindDomainOwnership(ctx, domain)
	if lookupErr != nil {
		// a partial scan means unknown, not absent
		slog.Error("provider domain scan failed", "domain", domain, "err", lookupErr)
		return &dto.ProviderDomainResponse{
			Status:  "unknown",
			Message: "Could not determine domain ownership with the provider, try again later",
		}, nil
	}
	if ownership.Exists && !ownership.OwnedByThisProject {
		return &dto.ProviderDomainResponse{
			Domain: &dto.ProviderDomainInfo{
				Name:                   domain,
				ProjectID:              ownership.ProjectID,
				AssignedToOtherProject: true,
			},
			Status:  "assigned_to_other",
			Message: fmt.Sprintf("Domain is assigned to another provider project (%v)", ownership.ProjectID),
		}, nil
	}

	return &dto.ProviderDomainResponse{
		Status:  string(consts.DomainStatusNotAdded),
		Message: "Domain not added to the provider yet",
	}, nil
}
