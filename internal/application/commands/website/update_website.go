package website

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/application/dto"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/config"
	"github.com/solopage/solopage-backend/internal/infra/db"
	"github.com/solopage/solopage-backend/internal/infra/db/repo"
	dbs "github.com/solopage/solopage-backend/pkg/db"
)

type UpdateWebsite struct {
	uowFactory *dbs.UOWFactory
	tenantCfg  *config.TenantConfig
}

func NewUpdateWebsite(factory *dbs.UOWFactory, tenantCfg *config.TenantConfig) *UpdateWebsite {
	return &UpdateWebsite{uowFactory: factory, tenantCfg: tenantCfg}
}

// Execute applies a partial update. Uniqueness checks run inside the same
// transaction as the write, so a failed check discards the whole patch.
func (c *UpdateWebsite) Execute(ctx context.Context, id uuid.UUID, req *dto.UpdateWebsiteRequest, identity *auth.Identity) (*db.Website, error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	r := repo.NewWebsiteRepo(tx)
	website, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if website == nil {
		err = errs.NotFoundError{Resource: "Website"}
		return nil, err
	}
	if website.OwnerID != identity.UserID {
		err = errs.PermissionsError{Err: fmt.Errorf("user requesting action is not the website's owner")}
		return nil, err
	}

	wasPublished := website.IsPublished

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			err = errs.ValidationError{Field: "title", Message: "Title cannot be empty"}
			return nil, err
		}
		website.Title = *req.Title
	}
	if req.Template != nil {
		if !consts.IsValidTemplate(consts.Template(*req.Template)) {
			err = errs.ValidationError{Field: "template", Message: "Invalid template"}
			return nil, err
		}
		website.Template = consts.Template(*req.Template)
	}
	if req.Data != nil {
		website.Content = db.MapToRawMessage(*req.Data)
	}

	if req.Slug != nil && !strings.EqualFold(*req.Slug, website.Slug) {
		if err = validateSlug(*req.Slug, c.tenantCfg); err != nil {
			return nil, err
		}
		if err = r.ReserveSlug(ctx, *req.Slug, &website.ID); err != nil {
			return nil, err
		}
		website.Slug = strings.ToLower(*req.Slug)
	}

	domainChanged := false
	if req.CustomDomain != nil {
		newDomain := normalizeDomain(req.CustomDomain)
		if !equalDomains(website.CustomDomain, newDomain) {
			domainChanged = true
			website.CustomDomain = newDomain
			// a new domain starts its provider lifecycle from scratch
			website.DomainStatus = consts.DomainStatusNotAdded
			website.ProviderDomainID = nil
		}
	}

	if req.IsPublished != nil {
		website.IsPublished = *req.IsPublished
	}

	turningOn := website.IsPublished && !wasPublished
	if website.CustomDomain != nil && ((domainChanged && website.IsPublished) || turningOn) {
		if err = r.ReserveCustomDomainForPublish(ctx, *website.CustomDomain, &website.ID); err != nil {
			return nil, err
		}
	}

	website.UpdatedAt = time.Now()
	if err = r.Update(ctx, website); err != nil {
		return nil, err
	}

	return website, nil
}

func equalDomains(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
