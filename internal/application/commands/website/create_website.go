package website

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/application/dto"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/application/slug"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/config"
	"github.com/solopage/solopage-backend/internal/infra/db"
	"github.com/solopage/solopage-backend/internal/infra/db/repo"
	dbs "github.com/solopage/solopage-backend/pkg/db"
)

type CreateWebsite struct {
	uowFactory *dbs.UOWFactory
	tenantCfg  *config.TenantConfig
}

func NewCreateWebsite(factory *dbs.UOWFactory, tenantCfg *config.TenantConfig) *CreateWebsite {
	return &CreateWebsite{uowFactory: factory, tenantCfg: tenantCfg}
}

func (c *CreateWebsite) Execute(ctx context.Context, req *dto.CreateWebsiteRequest, identity *auth.Identity) (*db.Website, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errs.ValidationError{Field: "title", Message: "Title is required"}
	}
	if !consts.IsValidTemplate(consts.Template(req.Template)) {
		return nil, errs.ValidationError{Field: "template", Message: "Invalid template"}
	}
	if err := validateSlug(req.Slug, c.tenantCfg); err != nil {
		return nil, err
	}
	customDomain := normalizeDomain(req.CustomDomain)

	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	r := repo.NewWebsiteRepo(tx)
	if err = r.ReserveSlug(ctx, req.Slug, nil); err != nil {
		return nil, err
	}
	if isPublished && customDomain != nil {
		if err = r.ReserveCustomDomainForPublish(ctx, *customDomain, nil); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	newWebsite := &db.Website{
		ID:           uuid.New(),
		OwnerID:      identity.UserID,
		Title:        req.Title,
		Slug:         strings.ToLower(req.Slug),
		CustomDomain: customDomain,
		DomainStatus: consts.DomainStatusNotAdded,
		Template:     consts.Template(req.Template),
		Content:      db.MapToRawMessage(req.Data),
		IsPublished:  isPublished,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = r.Insert(ctx, newWebsite); err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}

	return newWebsite, nil
}

func validateSlug(s string, cfg *config.TenantConfig) error {
	switch slug.Validate(strings.ToLower(s), cfg) {
	case slug.FailureTooShort:
		return errs.ValidationError{Field: "slug", Message: "Slug must be at least 3 characters"}
	case slug.FailureTooLong:
		return errs.ValidationError{Field: "slug", Message: "Slug must be at most 63 characters"}
	case slug.FailureInvalidFormat:
		return errs.ValidationError{Field: "slug", Message: "Slug may only contain lowercase letters, digits and single hyphens"}
	case slug.FailureReserved:
		return errs.ValidationError{Field: "slug", Message: "Slug is reserved"}
	}
	return nil
}

func normalizeDomain(domain *string) *string {
	if domain == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*domain))
	if normalized == "" {
		return nil
	}
	return &normalized
}
