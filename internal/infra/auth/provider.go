package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Identity struct {
	UserID uuid.UUID
}

// IdentityProvider is the opaque auth collaborator: it issues tokens for a
// user and resolves tokens back to a user. Nothing else about authentication
// leaks into the rest of the system.
type IdentityProvider struct {
	cfg *AuthConfig
}

func NewIdentityProvider(cfg *AuthConfig) *IdentityProvider {
	return &IdentityProvider{cfg: cfg}
}

func (p *IdentityProvider) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.cfg.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.cfg.Secret))
}

func (p *IdentityProvider) Authenticate(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(p.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("identity can't be retrieved, %v", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("token has no subject, %v", err)
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user id, %v", err)
	}

	return &Identity{UserID: userID}, nil
}
