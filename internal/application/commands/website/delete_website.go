package website

import (
	"context"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/db/repo"
	dbs "github.com/solopage/solopage-backend/pkg/db"
)

type DeleteWebsite struct {
	uowFactory *dbs.UOWFactory
}

func NewDeleteWebsite(factory *dbs.UOWFactory) *DeleteWebsite {
	return &DeleteWebsite{uowFactory: factory}
}

// Execute hard-deletes an owned website. There is no tombstone; the slug and
// domain free up immediately.
func (c *DeleteWebsite) Execute(ctx context.Context, id uuid.UUID, identity *auth.Identity) error {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	deleted, err := repo.NewWebsiteRepo(tx).Delete(ctx, id, identity.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		err = errs.NotFoundError{Resource: "Website"}
		return err
	}
	return nil
}
