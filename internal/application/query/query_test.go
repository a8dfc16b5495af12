package query_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/application/query"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/config"
	"github.com/solopage/solopage-backend/internal/infra/db"
	"github.com/solopage/solopage-backend/internal/infra/db/repo"
	"github.com/solopage/solopage-backend/internal/testinfra"
	"github.com/stretchr/testify/require"
)

func seedWebsite(t *testing.T, slug string, mutate func(*db.Website)) *db.Website {
	t.Helper()
	now := time.Now()
	w := &db.Website{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Title:        "Site " + slug,
		Slug:         slug,
		DomainStatus: consts.DomainStatusNotAdded,
		Template:     consts.TemplateBusiness,
		Content:      json.RawMessage(`{}`),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if mutate != nil {
		mutate(w)
	}
	require.NoError(t, repo.NewWebsiteRepo(testinfra.Pool).Insert(context.Background(), w))
	return w
}

func TestCheckSlug(t *testing.T) {
	ctx := context.Background()
	q := query.NewCheckSlug(repo.NewWebsiteRepo(testinfra.Pool), config.NewTenantConfig())

	seedWebsite(t, "query-taken-slug", nil)

	tests := []struct {
		candidate string
		available bool
		message   string
	}{
		{"query-taken-slug", false, "Slug already exists"},
		{"Query-Taken-Slug", false, "Slug already exists"},
		{"query-free-slug", true, "Slug is available"},
		{"www", false, "Slug is reserved"},
		{"ab", false, "Slug is not valid"},
		{"bad_slug", false, "Slug is not valid"},
	}
	for _, tt := range tests {
		result, err := q.Query(ctx, tt.candidate)
		require.NoError(t, err)
		require.Equal(t, tt.available, result.Available, tt.candidate)
		require.Equal(t, tt.message, result.Message, tt.candidate)
	}
}

func TestGetSiteServesPublishedOnly(t *testing.T) {
	ctx := context.Background()
	q := query.NewGetSite(repo.NewWebsiteRepo(testinfra.Pool))

	seedWebsite(t, "query-live-site", func(w *db.Website) { w.IsPublished = true })
	seedWebsite(t, "query-draft-site", nil)

	found, err := q.Query(ctx, "query-live-site")
	require.NoError(t, err)
	require.Equal(t, "query-live-site", found.Slug)

	_, err = q.Query(ctx, "query-draft-site")
	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetSiteByDomain(t *testing.T) {
	ctx := context.Background()
	q := query.NewGetSiteByDomain(repo.NewWebsiteRepo(testinfra.Pool))

	seedWebsite(t, "query-domain-site", func(w *db.Website) {
		domain := "query-live.example.com"
		w.CustomDomain = &domain
		w.IsPublished = true
	})

	found, err := q.Query(ctx, "Query-Live.example.com")
	require.NoError(t, err)
	require.Equal(t, "query-domain-site", found.Slug)

	_, err = q.Query(ctx, "query-unknown.example.com")
	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetWebsiteScopedToOwner(t *testing.T) {
	ctx := context.Background()
	q := query.NewGetWebsite(repo.NewWebsiteRepo(testinfra.Pool))

	w := seedWebsite(t, "query-owned-site", nil)

	found, err := q.Query(ctx, w.ID, &auth.Identity{UserID: w.OwnerID})
	require.NoError(t, err)
	require.Equal(t, w.ID, found.ID)

	// another user's lookup reads as missing, not forbidden
	_, err = q.Query(ctx, w.ID, &auth.Identity{UserID: uuid.New()})
	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetWebsitesNewestFirst(t *testing.T) {
	ctx := context.Background()
	q := query.NewGetWebsites(repo.NewWebsiteRepo(testinfra.Pool))

	owner := uuid.New()
	older := seedWebsite(t, "query-older-site", func(w *db.Website) {
		w.OwnerID = owner
		w.CreatedAt = time.Now().Add(-time.Hour)
	})
	newer := seedWebsite(t, "query-newer-site", func(w *db.Website) {
		w.OwnerID = owner
	})

	websites, err := q.Query(ctx, &auth.Identity{UserID: owner})
	require.NoError(t, err)
	require.Len(t, websites, 2)
	require.Equal(t, newer.ID, websites[0].ID)
	require.Equal(t, older.ID, websites[1].ID)
}

func TestCheckDomainUsage(t *testing.T) {
	ctx := context.Background()
	q := query.NewCheckDomainUsage(repo.NewWebsiteRepo(testinfra.Pool))

	holder := seedWebsite(t, "query-usage-holder", func(w *db.Website) {
		domain := "query-used.example.com"
		w.CustomDomain = &domain
		w.IsPublished = true
	})

	used, err := q.Query(ctx, "QUERY-Used.example.com", nil)
	require.NoError(t, err)
	require.True(t, used.IsUsed)
	require.Contains(t, used.Message, holder.Title)
	require.NotNil(t, used.ExistingWebsite)
	require.Equal(t, holder.ID, used.ExistingWebsite.ID)

	// the holder itself is excluded when editing its own record
	self, err := q.Query(ctx, "query-used.example.com", &holder.ID)
	require.NoError(t, err)
	require.False(t, self.IsUsed)

	free, err := q.Query(ctx, "query-free.example.com", nil)
	require.NoError(t, err)
	require.False(t, free.IsUsed)
	require.Equal(t, "Custom domain is available", free.Message)
}
