package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/db"
)

type CreateWebsiteRequest struct {
	Title        string                 `json:"title"`
	Slug         string                 `json:"slug"`
	Template     string                 `json:"template"`
	Data         map[string]interface{} `json:"data"`
	CustomDomain *string                `json:"customDomain,omitempty"`
	IsPublished  *bool                  `json:"isPublished,omitempty"`
}

type UpdateWebsiteRequest struct {
	Title        *string                 `json:"title,omitempty"`
	Slug         *string                 `json:"slug,omitempty"`
	Template     *string                 `json:"template,omitempty"`
	Data         *map[string]interface{} `json:"data,omitempty"`
	CustomDomain *string                 `json:"customDomain,omitempty"`
	IsPublished  *bool                   `json:"isPublished,omitempty"`
}

type WebsiteResponse struct {
	ID               uuid.UUID              `json:"id"`
	OwnerID          uuid.UUID              `json:"ownerId"`
	Title            string                 `json:"title"`
	Slug             string                 `json:"slug"`
	CustomDomain     *string                `json:"customDomain,omitempty"`
	DomainStatus     consts.DomainStatus    `json:"domainStatus"`
	ProviderDomainID *string                `json:"providerDomainId,omitempty"`
	Template         consts.Template        `json:"template"`
	Data             map[string]interface{} `json:"data"`
	IsPublished      bool                   `json:"isPublished"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

func MapWebsite(w *db.Website) WebsiteResponse {
	return WebsiteResponse{
		ID:               w.ID,
		OwnerID:          w.OwnerID,
		Title:            w.Title,
		Slug:             w.Slug,
		CustomDomain:     w.CustomDomain,
		DomainStatus:     w.DomainStatus,
		ProviderDomainID: w.ProviderDomainID,
		Template:         w.Template,
		Data:             db.RawMessageToMap(w.Content),
		IsPublished:      w.IsPublished,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type SlugAvailability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type WebsiteRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

type DomainUsageResponse struct {
	IsUsed          bool        `json:"isUsed"`
	Message         string      `json:"message"`
	ExistingWebsite *WebsiteRef `json:"existingWebsite,omitempty"`
}

type DomainStatusResponse struct {
	Status              consts.DNSStatus `json:"status"`
	Message             string           `json:"message"`
	CurrentNameservers  []string         `json:"currentNameservers,omitempty"`
	RequiredNameservers []string         `json:"requiredNameservers,omitempty"`
	Website             *WebsiteRef      `json:"website,omitempty"`
}

type SiteByDomainResponse struct {
	SiteSlug string          `json:"siteSlug"`
	Template consts.Template `json:"template"`
}

type AddCustomDomainRequest struct {
	Domain string `json:"domain"`
}

type AddCustomDomainResponse struct {
	Message string              `json:"message"`
	Domain  string              `json:"domain"`
	Status  consts.DomainStatus `json:"status"`
}

type ProviderDomainInfo struct {
	Name                   string `json:"name"`
	ProjectID              string `json:"projectId,omitempty"`
	AssignedToOtherProject bool   `json:"assignedToOtherProject"`
}

type ProviderDomainResponse struct {
	Domain  *ProviderDomainInfo `json:"domain"`
	Status  string              `json:"status"`
	Message string              `json:"message"`
}
