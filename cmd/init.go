package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/solopage/solopage-backend/internal/application"
	domaincmd "github.com/solopage/solopage-backend/internal/application/commands/domain"
	"github.com/solopage/solopage-backend/internal/application/commands/website"
	"github.com/solopage/solopage-backend/internal/application/query"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/solopage/solopage-backend/internal/infra/client/vercel"
	"github.com/solopage/solopage-backend/internal/infra/config"
	"github.com/solopage/solopage-backend/internal/infra/dns"
	"github.com/solopage/solopage-backend/internal/infra/db/repo"
	"github.com/solopage/solopage-backend/internal/presentation/gateway"
	"github.com/solopage/solopage-backend/internal/presentation/rest"
	"github.com/solopage/solopage-backend/pkg/db"
	"github.com/solopage/solopage-backend/pkg/env"
)

func Init() {
	if err := godotenv.Load("config.env"); err != nil {
		slog.Info("no config.env file, relying on environment")
	}

	// DB
	dbConfig := db.NewConfig()
	pool, err := pgxpool.New(context.Background(), dbConfig.GetDSN())
	if err != nil {
		log.Panicf("failed to create pool: %v", err)
	}
	if err = pool.Ping(context.Background()); err != nil {
		log.Panicf("failed to connect to db: %v", err)
	}
	uowFactory := db.NewUoWFactory(pool)
	poolRepo := repo.NewWebsiteRepo(pool)

	// Configs
	tenantConfig := config.NewTenantConfig()
	vercelConfig := vercel.NewVercelConfig()
	authConfig := auth.NewAuthConfig()
	if !vercelConfig.Configured() {
		slog.Info("domain provider credentials missing, domain registration endpoints will fail fast")
	}

	vercelClient := vercel.NewClient(vercelConfig)
	dnsChecker := dns.NewChecker(tenantConfig)
	identityProvider := auth.NewIdentityProvider(authConfig)

	handlers := &application.Handlers{
		CreateWebsite:       website.NewCreateWebsite(uowFactory, tenantConfig),
		UpdateWebsite:       website.NewUpdateWebsite(uowFactory, tenantConfig),
		DeleteWebsite:       website.NewDeleteWebsite(uowFactory),
		TogglePublish:       website.NewTogglePublish(uowFactory),
		AddCustomDomain:     domaincmd.NewAddCustomDomain(uowFactory, vercelConfig, vercelClient),
		CheckSlug:           query.NewCheckSlug(poolRepo, tenantConfig),
		GetWebsites:         query.NewGetWebsites(poolRepo),
		GetWebsite:          query.NewGetWebsite(poolRepo),
		GetSite:             query.NewGetSite(poolRepo),
		GetSiteByDomain:     query.NewGetSiteByDomain(poolRepo),
		CheckDomainStatus:   query.NewCheckDomainStatus(poolRepo, dnsChecker),
		CheckDomainUsage:    query.NewCheckDomainUsage(poolRepo),
		CheckProviderDomain: query.NewCheckProviderDomain(uowFactory, vercelConfig, vercelClient),
	}
	handler := rest.NewServer(handlers, identityProvider)
	hostGateway := gateway.NewGateway(tenantConfig, poolRepo)

	app := fiber.New(fiber.Config{
		IdleTimeout: 5 * time.Second,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     env.GetEnv("CORS_ORIGIN", "http://localhost:3000"),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(hostGateway.Middleware())
	rest.RegisterHandlers(app, handler)

	go func() {
		if err := app.Listen(":" + env.GetEnv("PORT", "8080")); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	fmt.Println("Gracefully shutting down...")
	_ = app.Shutdown()

	pool.Close()
	fmt.Println("Fiber was successfully shutdown.")
}
