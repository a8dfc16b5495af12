package vercel

import (
	"os"

	"github.com/solopage/solopage-backend/pkg/env"
)

type VercelConfig struct {
	Token     string
	ProjectID string
	TeamID    string
	BaseURL   string
}

func NewVercelConfig() *VercelConfig {
	return &VercelConfig{
		Token:     os.Getenv("VERCEL_TOKEN"),
		ProjectID: os.Getenv("VERCEL_PROJECT_ID"),
		TeamID:    os.Getenv("VERCEL_TEAM_ID"),
		BaseURL:   env.GetEnv("VERCEL_API_URL", "https://api.vercel.com"),
	}
}

// Configured reports whether the credentials needed for domain registration
// are present. Endpoints that need the provider fail fast when they are not.
func (c *VercelConfig) Configured() bool {
	return c.Token != "" && c.ProjectID != ""
}
