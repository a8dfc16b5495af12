package query

import (
	"context"
	"strings"

	"github.com/solopage/solopage-backend/internal/application/dto"
	"github.com/solopage/solopage-backend/internal/application/interfaces"
	"github.com/solopage/solopage-backend/internal/application/slug"
	"github.com/solopage/solopage-backend/internal/infra/config"
)

type CheckSlug struct {
	repo      interfaces.WebsiteRepo
	tenantCfg *config.TenantConfig
}

func NewCheckSlug(repo interfaces.WebsiteRepo, tenantCfg *config.TenantConfig) *CheckSlug {
	return &CheckSlug{repo: repo, tenantCfg: tenantCfg}
}

// Query reports slug availability. Invalid and reserved slugs report as
// unavailable; this is advisory only, the store's reservation check decides
// at write time.
func (q *CheckSlug) Query(ctx context.Context, candidate string) (dto.SlugAvailability, error) {
	candidate = strings.ToLower(candidate)
	switch slug.Validate(candidate, q.tenantCfg) {
	case slug.FailureNone:
	case slug.FailureReserved:
		return dto.SlugAvailability{Available: false, Message: "Slug is reserved"}, nil
	default:
		return dto.SlugAvailability{Available: false, Message: "Slug is not valid"}, nil
	}

	existing, err := q.repo.FindBySlug(ctx, candidate)
	if err != nil {
		return dto.SlugAvailability{}, err
	}
	if existing != nil {
		return dto.SlugAvailability{Available: false, Message: "Slug already exists"}, nil
	}
	return dto.SlugAvailability{Available: true, Message: "Slug is available"}, nil
}
