package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/application/dto"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/application/interfaces"
)

// CheckDomainUsage is the advisory half of the domain conflict policy: it
// tells the UI whether a domain is already held by another published website
// before a save is attempted. The store's reservation at write time remains
// the source of truth.
type CheckDomainUsage struct {
	repo interfaces.WebsiteRepo
}

func NewCheckDomainUsage(repo interfaces.WebsiteRepo) *CheckDomainUsage {
	return &CheckDomainUsage{repo: repo}
}

func (q *CheckDomainUsage) Query(ctx context.Context, domain string, excludeID *uuid.UUID) (dto.DomainUsageResponse, error) {
	domain = strings.ToLower(domain)
	err := q.repo.ReserveCustomDomainForPublish(ctx, domain, excludeID)
	if err == nil {
		return dto.DomainUsageResponse{
			IsUsed:  false,
			Message: "Custom domain is available",
		}, nil
	}

	var conflict errs.ConflictError
	if !errors.As(err, &conflict) {
		return dto.DomainUsageResponse{}, err
	}

	existing, err := q.repo.FindPublishedByCustomDomain(ctx, domain)
	if err != nil {
		return dto.DomainUsageResponse{}, err
	}
	resp := dto.DomainUsageResponse{
		IsUsed:  true,
		Message: fmt.Sprintf("This custom domain is already being used by another published website: %q", conflict.Title),
	}
	if existing != nil {
		resp.ExistingWebsite = &dto.WebsiteRef{ID: existing.ID, Title: existing.Title, Slug: existing.Slug}
	}
	return resp, nil
}
