package application

import (
	"github.com/solopage/solopage-backend/internal/application/commands/domain"
	"github.com/solopage/solopage-backend/internal/application/commands/website"
	"github.com/solopage/solopage-backend/internal/application/query"
)

type Handlers struct {
	CreateWebsite       *website.CreateWebsite
	UpdateWebsite       *website.UpdateWebsite
	DeleteWebsite       *website.DeleteWebsite
	TogglePublish       *website.TogglePublish
	AddCustomDomain     *domain.AddCustomDomain
	CheckSlug           *query.CheckSlug
	GetWebsites         *query.GetWebsites
	GetWebsite          *query.GetWebsite
	GetSite             *query.GetSite
	GetSiteByDomain     *query.GetSiteByDomain
	CheckDomainStatus   *query.CheckDomainStatus
	CheckDomainUsage    *query.CheckDomainUsage
	CheckProviderDomain *query.CheckProviderDomain
}
