package auth

import (
	"time"

	"github.com/solopage/solopage-backend/pkg/env"
)

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

func NewAuthConfig() *AuthConfig {
	return &AuthConfig{
		Secret:   env.GetEnv("JWT_SECRET", "dev-secret"),
		TokenTTL: 24 * time.Hour,
	}
}
