package gateway

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/solopage/solopage-backend/internal/application/slug"
	"github.com/solopage/solopage-backend/internal/infra/config"
	"github.com/solopage/solopage-backend/internal/infra/db"
)

// SiteStore is the read-side of the website record store the gateway needs.
type SiteStore interface {
	FindPublishedBySlug(ctx context.Context, slug string) (*db.Website, error)
	FindPublishedByCustomDomain(ctx context.Context, domain string) (*db.Website, error)
}

type OutcomeKind int

const (
	OutcomePassThrough OutcomeKind = iota
	OutcomeRewrite
	OutcomeNotFound
)

type Outcome struct {
	Kind OutcomeKind
	Slug string
}

// Gateway decides, per inbound request, whether the Host header maps to a
// published website. Exactly one outcome is produced per request; there are
// no retries at this layer.
type Gateway struct {
	cfg   *config.TenantConfig
	store SiteStore
}

func NewGateway(cfg *config.TenantConfig, store SiteStore) *Gateway {
	return &Gateway{cfg: cfg, store: store}
}

// Resolve classifies the host and looks up the matching published website.
// Only root-path requests are eligible for rewriting; a website's content
// lives at the root of its resolved host.
func (g *Gateway) Resolve(ctx context.Context, host, path string) (Outcome, error) {
	if path != "/" && path != "" {
		return Outcome{Kind: OutcomePassThrough}, nil
	}

	class := slug.ClassifyHost(host, g.cfg)
	switch class.Kind {
	case slug.HostRootDomain, slug.HostReservedSubdomain:
		return Outcome{Kind: OutcomePassThrough}, nil

	case slug.HostTenantSubdomain:
		website, err := g.store.FindPublishedBySlug(ctx, class.Label)
		if err != nil {
			return Outcome{}, err
		}
		if website == nil {
			// an unknown subdomain never falls through to the app UI
			return Outcome{Kind: OutcomeNotFound}, nil
		}
		return Outcome{Kind: OutcomeRewrite, Slug: website.Slug}, nil

	default:
		website, err := g.store.FindPublishedByCustomDomain(ctx, class.Label)
		if err != nil {
			return Outcome{}, err
		}
		if website == nil {
			return Outcome{Kind: OutcomeNotFound}, nil
		}
		return Outcome{Kind: OutcomeRewrite, Slug: website.Slug}, nil
	}
}

// Middleware rewrites eligible requests to the resolved website's render
// route and restarts routing, so the rewrite is invisible to the client.
func (g *Gateway) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		outcome, err := g.Resolve(c.UserContext(), c.Hostname(), c.Path())
		if err != nil {
			slog.Error("host resolution failed", "host", c.Hostname(), "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
		switch outcome.Kind {
		case OutcomeRewrite:
			slog.Info("rewriting host to site", "host", c.Hostname(), "slug", outcome.Slug)
			c.Path("/api/sites/" + outcome.Slug)
			return c.RestartRouting()
		case OutcomeNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Website not found"})
		default:
			return c.Next()
		}
	}
}
