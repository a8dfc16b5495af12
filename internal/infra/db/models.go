package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/domain/consts"
)

type Website struct {
	ID               uuid.UUID           `db:"id"`
	OwnerID          uuid.UUID           `db:"owner_id"`
	Title            string              `db:"title"`
	Slug             string              `db:"slug"`
	CustomDomain     *string             `db:"custom_domain"`
	DomainStatus     consts.DomainStatus `db:"domain_status"`
	ProviderDomainID *string             `db:"provider_domain_id"`
	Template         consts.Template     `db:"template"`
	Content          json.RawMessage     `db:"content"`
	IsPublished      bool                `db:"is_published"`
	CreatedAt        time.Time           `db:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at"`
}
