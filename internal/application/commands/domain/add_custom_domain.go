package domain

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/client/vercel"
	"github.com/solopage/solopage-backend/internal/infra/db"
	"github.com/solopage/solopage-backend/internal/infra/db/repo"
	dbs "github.com/solopage/solopage-backend/pkg/db"
)

// AddCustomDomain registers an owner's custom domain with the edge provider.
// This command is the only writer allowed to move domain_status into pending
// without a user edit of the domain itself.
type AddCustomDomain struct {
	uowFactory *dbs.UOWFactory
	cfg        *vercel.VercelConfig
	client     *vercel.Client
}

func NewAddCustomDomain(factory *dbs.UOWFactory, cfg *vercel.VercelConfig, client *vercel.Client) *AddCustomDomain {
	return &AddCustomDomain{uowFactory: factory, cfg: cfg, client: client}
}

func (c *AddCustomDomain) Execute(ctx context.Context, domain string, identity *auth.Identity) (*db.Website, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, errs.ValidationError{Field: "domain", Message: "Domain is required"}
	}
	if !c.cfg.Configured() {
		return nil, errs.ConfigurationError{Message: "domain provider credentials are not configured"}
	}

	uow := c.uowFactory.GetUoW()
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

	result := c.client.RegisterDomain(ctx, domain)
	switch result.Outcome {
	case vercel.RegisterOK:
	case vercel.RegisterAlreadyAssigned:
		err = errs.ProviderError{Kind: errs.ProviderAlreadyAssigned, Err: errors.New(result.Detail)}
		return nil, err
	case vercel.RegisterInvalidDomain:
		err = errs.ProviderError{Kind: errs.ProviderInvalidDomain, Err: errors.New(result.Detail)}
		return nil, err
	default:
		err = errs.ProviderError{Kind: errs.ProviderUnreachable, Err: errors.New(result.Detail)}
		return nil, err
	}

	slog.Info("domain registered with provider", "domain", domain, "providerDomainID", result.DomainID)
	website.DomainStatus = consts.DomainStatusPending
	website.ProviderDomainID = &result.DomainID
	if err = r.UpdateDomainRegistration(ctx, website.ID, consts.DomainStatusPending, &result.DomainID); err != nil {
		return nil, err
	}

	return website, nil
}
