package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/db"
)

// WebsiteRepo is the website record store. It is the single source of truth
// for slug, custom domain, publish state and domain status; finders return
// (nil, nil) when no record matches.
type WebsiteRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db.Website, error)
	FindBySlug(ctx context.Context, slug string) (*db.Website, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*db.Website, error)
	FindPublishedByCustomDomain(ctx context.Context, domain string) (*db.Website, error)
	FindByCustomDomain(ctx context.Context, domain string) (*db.Website, error)
	FindByCustomDomainAndOwner(ctx context.Context, domain string, ownerID uuid.UUID) (*db.Website, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Website, error)
	ReserveSlug(ctx context.Context, slug string, excludeID *uuid.UUID) error
	ReserveCustomDomainForPublish(ctx context.Context, domain string, excludeID *uuid.UUID) error
	Insert(ctx context.Context, w *db.Website) error
	Update(ctx context.Context, w *db.Website) error
	UpdateDomainRegistration(ctx context.Context, id uuid.UUID, status consts.DomainStatus, providerDomainID *string) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}
