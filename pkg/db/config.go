package db

import (
	"fmt"

	"github.com/solopage/solopage-backend/pkg/env"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func NewConfig() Config {
	return Config{
		Host:     env.GetEnv("DB_HOST", "localhost"),
		Port:     env.GetEnv("DB_PORT", "5432"),
		User:     env.GetEnv("DB_USER", "postgres"),
		Password: env.GetEnv("DB_PASSWORD", "password"),
		Name:     env.GetEnv("DB_NAME", "solopage"),
		SSLMode:  env.GetEnv("DB_SSLMODE", "disable"),
	}
}

func (c Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}
