package website_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/application/commands/website"
	"github.com/solopage/solopage-backend/internal/application/dto"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/config"
	"github.com/solopage/solopage-backend/internal/infra/db/repo"
	"github.com/solopage/solopage-backend/internal/testinfra"
	dbs "github.com/solopage/solopage-backend/pkg/db"
	"github.com/stretchr/testify/require"
)

var (
	factory   = dbs.NewUoWFactory(testinfra.Pool)
	tenantCfg = config.NewTenantConfig()
)

func identity() *auth.Identity {
	return &auth.Identity{UserID: uuid.New()}
}

func createRequest(slug string) *dto.CreateWebsiteRequest {
	return &dto.CreateWebsiteRequest{
		Title:    "Site " + slug,
		Slug:     slug,
		Template: string(consts.TemplatePortfolio),
		Data:     map[string]interface{}{"hero": "hi"},
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateWebsite(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)

	created, err := create.Execute(ctx, createRequest("My-First-Site"), identity())
	require.NoError(t, err)
	require.Equal(t, "my-first-site", created.Slug)
	require.False(t, created.IsPublished)
	require.Equal(t, consts.DomainStatusNotAdded, created.DomainStatus)

	found, err := repo.NewWebsiteRepo(testinfra.Pool).FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestCreateWebsiteValidation(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)

	tests := []struct {
		name  string
		req   *dto.CreateWebsiteRequest
		field string
	}{
		{"empty title", &dto.CreateWebsiteRequest{Title: " ", Slug: "ok-slug", Template: "portfolio"}, "title"},
		{"bad template", &dto.CreateWebsiteRequest{Title: "T", Slug: "ok-slug", Template: "spaceship"}, "template"},
		{"short slug", &dto.CreateWebsiteRequest{Title: "T", Slug: "ab", Template: "portfolio"}, "slug"},
		{"bad slug chars", &dto.CreateWebsiteRequest{Title: "T", Slug: "has_underscore", Template: "portfolio"}, "slug"},
		{"reserved slug", &dto.CreateWebsiteRequest{Title: "T", Slug: "admin", Template: "portfolio"}, "slug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := create.Execute(ctx, tt.req, identity())
			var validation errs.ValidationError
			require.ErrorAs(t, err, &validation)
			require.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestCreateWebsiteSlugConflict(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)

	_, err := create.Execute(ctx, createRequest("conflict-slug"), identity())
	require.NoError(t, err)

	_, err = create.Execute(ctx, createRequest("Conflict-Slug"), identity())
	var conflict errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Slug", conflict.Resource)
}

func TestUpdateWebsitePatchesFields(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)
	update := website.NewUpdateWebsite(factory, tenantCfg)

	owner := identity()
	created, err := create.Execute(ctx, createRequest("patch-me"), owner)
	require.NoError(t, err)

	updated, err := update.Execute(ctx, created.ID, &dto.UpdateWebsiteRequest{
		Title: strPtr("New Title"),
		Slug:  strPtr("Patched-Slug"),
	}, owner)
	require.NoError(t, err)
	require.Equal(t, "New Title", updated.Title)
	require.Equal(t, "patched-slug", updated.Slug)
	require.Equal(t, string(consts.TemplatePortfolio), string(updated.Template))
}

func TestUpdateWebsiteOwnership(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)
	update := website.NewUpdateWebsite(factory, tenantCfg)

	created, err := create.Execute(ctx, createRequest("owned-site"), identity())
	require.NoError(t, err)

	_, err = update.Execute(ctx, created.ID, &dto.UpdateWebsiteRequest{Title: strPtr("Hijack")}, identity())
	var permissions errs.PermissionsError
	require.ErrorAs(t, err, &permissions)

	_, err = update.Execute(ctx, uuid.New(), &dto.UpdateWebsiteRequest{Title: strPtr("Ghost")}, identity())
	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateDomainResetsProviderState(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)
	update := website.NewUpdateWebsite(factory, tenantCfg)

	owner := identity()
	req := createRequest("reset-provider")
	req.CustomDomain = strPtr("reset-old.example.com")
	created, err := create.Execute(ctx, req, owner)
	require.NoError(t, err)

	r := repo.NewWebsiteRepo(testinfra.Pool)
	providerID := "dom_old"
	require.NoError(t, r.UpdateDomainRegistration(ctx, created.ID, consts.DomainStatusValid, &providerID))

	updated, err := update.Execute(ctx, created.ID, &dto.UpdateWebsiteRequest{
		CustomDomain: strPtr("Reset-New.example.com"),
	}, owner)
	require.NoError(t, err)
	require.Equal(t, "reset-new.example.com", *updated.CustomDomain)
	require.Equal(t, consts.DomainStatusNotAdded, updated.DomainStatus)
	require.Nil(t, updated.ProviderDomainID)
}

func TestPublishWithTakenDomainFailsWholePatch(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)
	update := website.NewUpdateWebsite(factory, tenantCfg)

	holderReq := createRequest("holder-site")
	holderReq.CustomDomain = strPtr("held.example.com")
	holderReq.IsPublished = boolPtr(true)
	_, err := create.Execute(ctx, holderReq, identity())
	require.NoError(t, err)

	owner := identity()
	challengerReq := createRequest("challenger-site")
	challengerReq.CustomDomain = strPtr("held.example.com")
	challenger, err := create.Execute(ctx, challengerReq, owner)
	require.NoError(t, err)

	_, err = update.Execute(ctx, challenger.ID, &dto.UpdateWebsiteRequest{
		Title:       strPtr("Should Not Stick"),
		IsPublished: boolPtr(true),
	}, owner)
	var conflict errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Custom domain", conflict.Resource)
	require.Equal(t, "Site holder-site", conflict.Title)

	// the conflicting transaction rolled back in full
	found, err := repo.NewWebsiteRepo(testinfra.Pool).FindByID(ctx, challenger.ID)
	require.NoError(t, err)
	require.False(t, found.IsPublished)
	require.Equal(t, "Site challenger-site", found.Title)
}

func TestTogglePublish(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)
	toggle := website.NewTogglePublish(factory)

	owner := identity()
	created, err := create.Execute(ctx, createRequest("toggle-site"), owner)
	require.NoError(t, err)

	live, err := toggle.Execute(ctx, created.ID, owner)
	require.NoError(t, err)
	require.True(t, live.IsPublished)

	draft, err := toggle.Execute(ctx, created.ID, owner)
	require.NoError(t, err)
	require.False(t, draft.IsPublished)

	_, err = toggle.Execute(ctx, created.ID, identity())
	var permissions errs.PermissionsError
	require.ErrorAs(t, err, &permissions)
}

func TestUnpublishFreesDomainForNextPublisher(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)
	toggle := website.NewTogglePublish(factory)

	domain := "handover.example.com"

	holderOwner := identity()
	holderReq := createRequest("handover-holder")
	holderReq.CustomDomain = &domain
	holderReq.IsPublished = boolPtr(true)
	holder, err := create.Execute(ctx, holderReq, holderOwner)
	require.NoError(t, err)

	contenderOwner := identity()
	contenderReq := createRequest("handover-contender")
	contenderReq.CustomDomain = &domain
	contender, err := create.Execute(ctx, contenderReq, contenderOwner)
	require.NoError(t, err)

	_, err = toggle.Execute(ctx, contender.ID, contenderOwner)
	var conflict errs.ConflictError
	require.ErrorAs(t, err, &conflict)

	unpublished, err := toggle.Execute(ctx, holder.ID, holderOwner)
	require.NoError(t, err)
	require.False(t, unpublished.IsPublished)

	live, err := toggle.Execute(ctx, contender.ID, contenderOwner)
	require.NoError(t, err)
	require.True(t, live.IsPublished)

	found, err := repo.NewWebsiteRepo(testinfra.Pool).FindPublishedByCustomDomain(ctx, domain)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, contender.ID, found.ID)
}

func TestConcurrentPublishHasOneWinner(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)
	toggle := website.NewTogglePublish(factory)

	domain := "contested.example.com"
	const contenders = 5

	ids := make([]uuid.UUID, contenders)
	owners := make([]*auth.Identity, contenders)
	for i := range ids {
		owners[i] = identity()
		req := createRequest("contender-" + string(rune('a'+i)) + "-site")
		req.CustomDomain = &domain
		created, err := create.Execute(ctx, req, owners[i])
		require.NoError(t, err)
		ids[i] = created.ID
	}

	var wg sync.WaitGroup
	results := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = toggle.Execute(ctx, ids[i], owners[i])
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		var conflict errs.ConflictError
		require.ErrorAs(t, err, &conflict)
	}
	require.Equal(t, 1, winners)

	r := repo.NewWebsiteRepo(testinfra.Pool)
	published, err := r.FindPublishedByCustomDomain(ctx, domain)
	require.NoError(t, err)
	require.NotNil(t, published)
}

func TestDeleteWebsite(t *testing.T) {
	ctx := context.Background()
	create := website.NewCreateWebsite(factory, tenantCfg)
	del := website.NewDeleteWebsite(factory)

	owner := identity()
	created, err := create.Execute(ctx, createRequest("delete-site"), owner)
	require.NoError(t, err)

	err = del.Execute(ctx, created.ID, identity())
	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)

	require.NoError(t, del.Execute(ctx, created.ID, owner))

	// slug frees up immediately
	_, err = create.Execute(ctx, createRequest("delete-site"), owner)
	require.NoError(t, err)
}
