package website

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/db"
	"github.com/solopage/solopage-backend/internal/infra/db/repo"
	dbs "github.com/solopage/solopage-backend/pkg/db"
)

type TogglePublish struct {
	uowFactory *dbs.UOWFactory
}

func NewTogglePublish(factory *dbs.UOWFactory) *TogglePublish {
	return &TogglePublish{uowFactory: factory}
}

// Execute flips the publish state. Going live with a custom domain re-runs
// the published-domain reservation; on conflict the website stays
// unpublished.
func (c *TogglePublish) Execute(ctx context.Context, id uuid.UUID, identity *auth.Identity) (*db.Website, error) {
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

	if !website.IsPublished && website.CustomDomain != nil {
		if err = r.ReserveCustomDomainForPublish(ctx, *website.CustomDomain, &website.ID); err != nil {
			return nil, err
		}
	}

	website.IsPublished = !website.IsPublished
	website.UpdatedAt = time.Now()
	if err = r.Update(ctx, website); err != nil {
		return nil, err
	}

	return website, nil
}
