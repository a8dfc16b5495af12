package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/application"
	"github.com/solopage/solopage-backend/internal/application/dto"
	"github.com/solopage/solopage-backend/internal/application/errs"
	"github.com/solopage/solopage-backend/internal/infra/auth"
)

type Server struct {
	handlers *application.Handlers
	identity *auth.IdentityProvider
}

func NewServer(handlers *application.Handlers, identity *auth.IdentityProvider) *Server {
	return &Server{handlers: handlers, identity: identity}
}

func RegisterHandlers(app *fiber.App, s *Server) {
	api := app.Group("/api")

	api.Get("/health", s.Health)
	api.Get("/check-slug/:slug", s.CheckSlug)
	api.Get("/sites/:slug", s.GetSite)
	api.Get("/custom-domain/:domain", s.GetCustomDomain)
	api.Get("/site-by-domain/:domain", s.GetSiteByDomain)
	api.Get("/check-domain-status/:domain", s.CheckDomainStatus)
	api.Get("/check-domain-usage/:domain", s.CheckDomainUsage)

	api.Get("/websites", s.RequireAuth, s.ListWebsites)
	api.Post("/websites", s.RequireAuth, s.CreateWebsite)
	api.Get("/websites/:id", s.RequireAuth, s.GetWebsite)
	api.Put("/websites/:id", s.RequireAuth, s.UpdateWebsite)
	api.Patch("/websites/:id/toggle-publish", s.RequireAuth, s.TogglePublish)
	api.Delete("/websites/:id", s.RequireAuth, s.DeleteWebsite)
	api.Post("/add-custom-domain", s.RequireAuth, s.AddCustomDomain)
	api.Get("/check-vercel-domain/:domain", s.RequireAuth, s.CheckVercelDomain)
}

func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK", "message": "Server is running"})
}

// RequireAuth resolves the bearer token to an identity and stores it on the
// request context.
func (s *Server) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Access token required"})
	}
	identity, err := s.identity.Authenticate(token)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "Invalid token"})
	}
	c.Locals("identity", identity)
	return c.Next()
}

func identityFromCtx(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals("identity").(*auth.Identity)
	return identity
}

func (s *Server) CreateWebsite(c *fiber.Ctx) error {
	var req dto.CreateWebsiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	website, err := s.handlers.CreateWebsite.Execute(c.UserContext(), &req, identityFromCtx(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MapWebsite(website))
}

func (s *Server) ListWebsites(c *fiber.Ctx) error {
	websites, err := s.handlers.GetWebsites.Query(c.UserContext(), identityFromCtx(c))
	if err != nil {
		return errorResponse(c, err)
	}
	resp := make([]dto.WebsiteResponse, 0, len(websites))
	for i := range websites {
		resp = append(resp, dto.MapWebsite(&websites[i]))
	}
	return c.JSON(fiber.Map{"websites": resp})
}

func (s *Server) GetWebsite(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid website id"})
	}
	website, err := s.handlers.GetWebsite.Query(c.UserContext(), id, identityFromCtx(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MapWebsite(website))
}

func (s *Server) UpdateWebsite(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid website id"})
	}
	var req dto.UpdateWebsiteRequest
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	website, err := s.handlers.UpdateWebsite.Execute(c.UserContext(), id, &req, identityFromCtx(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MapWebsite(website))
}

func (s *Server) TogglePublish(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid website id"})
	}
	website, err := s.handlers.TogglePublish.Execute(c.UserContext(), id, identityFromCtx(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MapWebsite(website))
}

func (s *Server) DeleteWebsite(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid website id"})
	}
	if err = s.handlers.DeleteWebsite.Execute(c.UserContext(), id, identityFromCtx(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Website deleted successfully"})
}

func (s *Server) CheckSlug(c *fiber.Ctx) error {
	availability, err := s.handlers.CheckSlug.Query(c.UserContext(), c.Params("slug"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(availability)
}

func (s *Server) GetSite(c *fiber.Ctx) error {
	website, err := s.handlers.GetSite.Query(c.UserContext(), c.Params("slug"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"website": dto.MapWebsite(website)})
}

func (s *Server) GetCustomDomain(c *fiber.Ctx) error {
	website, err := s.handlers.GetSiteByDomain.Query(c.UserContext(), c.Params("domain"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"website": dto.MapWebsite(website)})
}

func (s *Server) GetSiteByDomain(c *fiber.Ctx) error {
	website, err := s.handlers.GetSiteByDomain.Query(c.UserContext(), c.Params("domain"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SiteByDomainResponse{SiteSlug: website.Slug, Template: website.Template})
}

func (s *Server) CheckDomainStatus(c *fiber.Ctx) error {
	status, err := s.handlers.CheckDomainStatus.Query(c.UserContext(), c.Params("domain"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(status)
}

func (s *Server) CheckDomainUsage(c *fiber.Ctx) error {
	var excludeID *uuid.UUID
	if exclude := c.Query("exclude"); exclude != "" {
		id, err := uuid.Parse(exclude)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid exclude id"})
		}
		excludeID = &id
	}
	usage, err := s.handlers.CheckDomainUsage.Query(c.UserContext(), c.Params("domain"), excludeID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(usage)
}

func (s *Server) AddCustomDomain(c *fiber.Ctx) error {
	var req dto.AddCustomDomainRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	website, err := s.handlers.AddCustomDomain.Execute(c.UserContext(), req.Domain, identityFromCtx(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.AddCustomDomainResponse{
		Message: "Domain added to the provider successfully",
		Domain:  *website.CustomDomain,
		Status:  website.DomainStatus,
	})
}

func (s *Server) CheckVercelDomain(c *fiber.Ctx) error {
	resp, err := s.handlers.CheckProviderDomain.Query(c.UserContext(), c.Params("domain"), identityFromCtx(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// errorResponse maps application errors to their HTTP shape. Conflict
// payloads carry enough detail for the user to act on.
func errorResponse(c *fiber.Ctx, err error) error {
	var validation errs.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: validation.Message})
	}
	var conflict errs.ConflictError
	if errors.As(err, &conflict) {
		resp := dto.ErrorResponse{Message: conflict.Resource + " already exists"}
		if conflict.Title != "" {
			resp.Details = fmt.Sprintf("This custom domain is already being used by another published website: %q. Please unpublish the other website first or choose a different domain.", conflict.Title)
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	var notFound errs.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: notFound.Resource + " not found"})
	}
	var permissions errs.PermissionsError
	if errors.As(err, &permissions) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "Not allowed"})
	}
	var configuration errs.ConfigurationError
	if errors.As(err, &configuration) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Domain provider configuration missing. Please contact administrator.",
		})
	}
	var provider errs.ProviderError
	if errors.As(err, &provider) {
		switch provider.Kind {
		case errs.ProviderAlreadyAssigned:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Message: "Domain is already assigned to another provider project",
				Details: "Remove the domain from the other project first, then try again.",
			})
		case errs.ProviderInvalidDomain:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Domain is not valid"})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Message: "Domain provider is unreachable, try again later"})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Server error"})
}
