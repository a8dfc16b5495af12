package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/application/interfaces"
	"github.com/solopage/solopage-backend/internal/domain/consts"
	"github.com/solopage/solopage-backend/internal/infra/db"
)

const websiteColumns = "id, owner_id, title, slug, custom_domain, domain_status, provider_domain_id, template, content, is_published, created_at, updated_at"

// Querier is satisfied by both pgx.Tx and *pgxpool.Pool, so the repo can run
// inside a unit of work or directly against the pool for reads.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type WebsiteRepo struct {
	q Querier
}

var _ interfaces.WebsiteRepo = (*WebsiteRepo)(nil)

func NewWebsiteRepo(q Querier) *WebsiteRepo {
	return &WebsiteRepo{q: q}
}

func (r *WebsiteRepo) scanWebsite(row pgx.Row) (*db.Website, error) {
	var w db.Website
	err := row.Scan(&w.ID, &w.OwnerID, &w.Title, &w.Slug, &w.CustomDomain, &w.DomainStatus,
		&w.ProviderDomainID, &w.Template, &w.Content, &w.IsPublished, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *WebsiteRepo) FindByID(ctx context.Context, id uuid.UUID) (*db.Website, error) {
	query := "SELECT " + websiteColumns + " FROM builder.websites WHERE id = $1"
	return r.scanWebsite(r.q.QueryRow(ctx, query, id))
}

func (r *WebsiteRepo) FindBySlug(ctx context.Context, slug string) (*db.Website, error) {
	query := "SELECT " + websiteColumns + " FROM builder.websites WHERE lower(slug) = lower($1)"
	return r.scanWebsite(r.q.QueryRow(ctx, query, slug))
}

func (r *WebsiteRepo) FindPublishedBySlug(ctx context.Context, slug string) (*db.Website, error) {
	query := "SELECT " + websiteColumns + " FROM builder.websites WHERE lower(slug) = lower($1) AND is_published"
	return r.scanWebsite(r.q.QueryRow(ctx, query, slug))
}

func (r *WebsiteRepo) FindPublishedByCustomDomain(ctx context.Context, domain string) (*db.Website, error) {
	query := "SELECT " + websiteColumns + " FROM builder.websites WHERE lower(custom_domain) = lower($1) AND is_published"
	return r.scanWebsite(r.q.QueryRow(ctx, query, domain))
}

func (r *WebsiteRepo) FindByCustomDomain(ctx context.Context, domain string) (*db.Website, error) {
	query := "SELECT " + websiteColumns + " FROM builder.websites WHERE lower(custom_domain) = lower($1) ORDER BY is_published DESC LIMIT 1"
	return r.scanWebsite(r.q.QueryRow(ctx, query, domain))
}

func (r *WebsiteRepo) FindByCustomDomainAndOwner(ctx context.Context, domain string, ownerID uuid.UUID) (*db.Website, error) {
	query := "SELECT " + websiteColumns + " FROM builder.websites WHERE lower(custom_domain) = lower($1) AND owner_id = $2 LIMIT 1"
	return r.scanWebsite(r.q.QueryRow(ctx, query, domain, ownerID))
}

func (r *WebsiteRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Website, error) {
	query := "SELECT " + websiteColumns + " FROM builder.websites WHERE owner_id = $1 ORDER BY created_at DESC"
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var websites []db.Website
	for rows.Next() {
		var w db.Website
		err = rows.Scan(&w.ID, &w.OwnerID, &w.Title, &w.Slug, &w.CustomDomain, &w.DomainStatus,
			&w.ProviderDomainID, &w.Template, &w.Content, &w.IsPublished, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, err
		}
		websites = append(websites, w)
	}
	return websites, rows.Err()
}

// ReserveSlug checks slug uniqueness across all websites, published or not.
// The unique index on slug is the final arbiter; this check exists so callers
// can fail before writing.
func (r *WebsiteRepo) ReserveSlug(ctx context.Context, slug string, excludeID *uuid.UUID) error {
	var id uuid.UUID
	query := "SELECT id FROM builder.websites WHERE lower(slug) = lower($1) AND ($2::uuid IS NULL OR id <> $2)"
	err := r.q.QueryRow(ctx, query, slug, excludeID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("can't check slug uniqueness, %v", err)
	}
	return errs.ConflictError{Resource: "Slug"}
}

// ReserveCustomDomainForPublish checks domain uniqueness among published
// websites only. Two unpublished websites may share a domain. The partial
// unique index on (custom_domain) WHERE is_published is the final arbiter.
func (r *WebsiteRepo) ReserveCustomDomainForPublish(ctx context.Context, domain string, excludeID *uuid.UUID) error {
	var id uuid.UUID
	var title string
	query := "SELECT id, title FROM builder.websites WHERE lower(custom_domain) = lower($1) AND is_published AND ($2::uuid IS NULL OR id <> $2)"
	err := r.q.QueryRow(ctx, query, domain, excludeID).Scan(&id, &title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("can't check custom domain uniqueness, %v", err)
	}
	return errs.ConflictError{Resource: "Custom domain", Title: title}
}

func (r *WebsiteRepo) Insert(ctx context.Context, w *db.Website) error {
	query := `INSERT INTO builder.websites(id, owner_id, title, slug, custom_domain, domain_status, provider_domain_id, template, content, is_published, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.q.Exec(ctx, query, w.ID, w.OwnerID, w.Title, w.Slug, w.CustomDomain, w.DomainStatus,
		w.ProviderDomainID, w.Template, w.Content, w.IsPublished, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *WebsiteRepo) Update(ctx context.Context, w *db.Website) error {
	query := `UPDATE builder.websites SET title = $2, slug = $3, custom_domain = $4, domain_status = $5,
			provider_domain_id = $6, template = $7, content = $8, is_published = $9, updated_at = $10 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, w.ID, w.Title, w.Slug, w.CustomDomain, w.DomainStatus,
		w.ProviderDomainID, w.Template, w.Content, w.IsPublished, w.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

// UpdateDomainRegistration records the provider side effect of a successful
// domain registration or a verification poll.
func (r *WebsiteRepo) UpdateDomainRegistration(ctx context.Context, id uuid.UUID, status consts.DomainStatus, providerDomainID *string) error {
	query := "UPDATE builder.websites SET domain_status = $2, provider_domain_id = COALESCE($3, provider_domain_id), updated_at = $4 WHERE id = $1"
	_, err := r.q.Exec(ctx, query, id, status, providerDomainID, time.Now())
	return err
}

func (r *WebsiteRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	tag, err := r.q.Exec(ctx, "DELETE FROM builder.websites WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// mapUniqueViolation turns a postgres unique violation into the conflict
// error the REST layer reports. A violation here means a concurrent writer
// won the race after the advisory reservation check passed.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "websites_custom_domain_published_idx" {
			return errs.ConflictError{Resource: "Custom domain"}
		}
		return errs.ConflictError{Resource: "Slug"}
	}
	return err
}
