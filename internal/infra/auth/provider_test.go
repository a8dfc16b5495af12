package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/solopage/solopage-backend/internal/infra/auth"
	"github.com/stretchr/testify/require"
)

func TestIssueAuthenticateRoundtrip(t *testing.T) {
	provider := auth.NewIdentityProvider(&auth.AuthConfig{
		Secret:   "test-secret",
		TokenTTL: time.Hour,
	})
	userID := uuid.New()

	token, err := provider.Issue(userID)
	require.NoError(t, err)

	identity, err := provider.Authenticate(token)
	require.NoError(t, err)
	require.Equal(t, userID, identity.UserID)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewIdentityProvider(&auth.AuthConfig{Secret: "one", TokenTTL: time.Hour})
	verifier := auth.NewIdentityProvider(&auth.AuthConfig{Secret: "two", TokenTTL: time.Hour})

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Authenticate(token)
	require.Error(t, err)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	provider := auth.NewIdentityProvider(&auth.AuthConfig{
		Secret:   "test-secret",
		TokenTTL: -time.Minute,
	})

	token, err := provider.Issue(uuid.New())
	require.NoError(t, err)

	_, err = provider.Authenticate(token)
	require.Error(t, err)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	provider := auth.NewIdentityProvider(&auth.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})

	_, err := provider.Authenticate("not-a-token")
	require.Error(t, err)
}
