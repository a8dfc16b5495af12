package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/application/interfaces"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/db"
)

// GetSite serves the public render route: published websites only, by slug.
type GetSite struct {
	repo interfaces.WebsiteRepo
}

func NewGetSite(repo interfaces.WebsiteRepo) *GetSite {
	return &GetSite{repo: repo}
}

func (q *GetSite) Query(ctx context.Context, slug string) (*db.Website, error) {
	website, err := q.repo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if website == nil {
		return nil, errs.NotFoundError{Resource: "Website"}
	}
	return website, nil
}

// GetSiteByDomain resolves a published website by its custom domain. Used by
// the public custom-domain route and by the host resolution gateway.
type GetSiteByDomain struct {
	repo interfaces.WebsiteRepo
}

func NewGetSiteByDomain(repo interfaces.WebsiteRepo) *GetSiteByDomain {
	return &GetSiteByDomain{repo: repo}
}

func (q *GetSiteByDomain) Query(ctx context.Context, domain string) (*db.Website, error) {
	website, err := q.repo.FindPublishedByCustomDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	if website == nil {
		return nil, errs.NotFoundError{Resource: "Website"}
	}
	return website, nil
}

// GetWebsites lists an owner's websites, newest first.
type GetWebsites struct {
	repo interfaces.WebsiteRepo
}

func NewGetWebsites(repo interfaces.WebsiteRepo) *GetWebsites {
	return &GetWebsites{repo: repo}
}

func (q *GetWebsites) Query(ctx context.Context, identity *auth.Identity) ([]db.Website, error) {
	return q.repo.FindByOwner(ctx, identity.UserID)
}

// GetWebsite fetches one owned website by id.
type GetWebsite struct {
	repo interfaces.WebsiteRepo
}

func NewGetWebsite(repo interfaces.WebsiteRepo) *GetWebsite {
	return &GetWebsite{repo: repo}
}

func (q *GetWebsite) Query(ctx context.Context, id uuid.UUID, identity *auth.Identity) (*db.Website, error) {
	website, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if website == nil || website.OwnerID != identity.UserID {
		return nil, errs.NotFoundError{Resource: "Website"}
	}
	return website, nil
}
