package oauthstate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundbackend/core"
	"fundbackend/models"
)

type memoryNonces struct {
	mu     sync.Mutex
	nonces map[string]bool
}

func newMemoryNonces() *memoryNonces {
	return &memoryNonces{nonces: map[string]bool{}}
}

func (m *memoryNonces) Remember(ctx context.Context, nonce string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nonces[nonce] = true
	return nil
}

func (m *memoryNonces) Consume(ctx context.Context, nonce string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.nonces[nonce] {
		return false, nil
	}
	delete(m.nonces, nonce)
	return true, nil
}

func TestOAuthStateService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	service := NewOAuthStateService("test-secret", newMemoryNonces())

	t.Run("server state", func(t *testing.T) {
		state := models.OAuthState{
			AuthType:         models.OAuthAuthTypeServer,
			OrganizationID:   "org_01",
			OrganizationName: "testorg",
		}

		token, err := service.Encode(ctx, state)
		require.NoError(t, err)

		decoded, err := service.Decode(ctx, token, models.OAuthAuthTypeServer)
		require.NoError(t, err)
		assert.Equal(t, state, decoded)
	})

	t.Run("user state", func(t *testing.T) {
		state := models.OAuthState{AuthType: models.OAuthAuthTypeUser, UserID: "u_01"}

		token, err := service.Encode(ctx, state)
		require.NoError(t, err)

		decoded, err := service.Decode(ctx, token, models.OAuthAuthTypeUser)
		require.NoError(t, err)
		assert.Equal(t, "u_01", decoded.UserID)
	})
}

func TestOAuthStateService_Decode_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("token is single-use", func(t *testing.T) {
		service := NewOAuthStateService("test-secret", newMemoryNonces())
		token, err := service.Encode(ctx, models.OAuthState{AuthType: models.OAuthAuthTypeUser, UserID: "u_01"})
		require.NoError(t, err)

		_, err = service.Decode(ctx, token, models.OAuthAuthTypeUser)
		require.NoError(t, err)

		_, err = service.Decode(ctx, token, models.OAuthAuthTypeUser)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("wrong auth type", func(t *testing.T) {
		service := NewOAuthStateService("test-secret", newMemoryNonces())
		token, err := service.Encode(ctx, models.OAuthState{AuthType: models.OAuthAuthTypeUser, UserID: "u_01"})
		require.NoError(t, err)

		_, err = service.Decode(ctx, token, models.OAuthAuthTypeServer)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		issuer := NewOAuthStateService("other-secret", newMemoryNonces())
		token, err := issuer.Encode(ctx, models.OAuthState{AuthType: models.OAuthAuthTypeServer, OrganizationID: "org_01"})
		require.NoError(t, err)

		service := NewOAuthStateService("test-secret", newMemoryNonces())
		_, err = service.Decode(ctx, token, models.OAuthAuthTypeServer)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		nonces := newMemoryNonces()
		service := NewOAuthStateService("test-secret", nonces)
		service.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := service.Encode(ctx, models.OAuthState{AuthType: models.OAuthAuthTypeServer, OrganizationID: "org_01"})
		require.NoError(t, err)

		service.now = time.Now
		_, err = service.Decode(ctx, token, models.OAuthAuthTypeServer)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("unsigned token", func(t *testing.T) {
		service := NewOAuthStateService("test-secret", newMemoryNonces())
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"auth_type": "server",
			"exp":       time.Now().Add(time.Minute).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Decode(ctx, unsigned, models.OAuthAuthTypeServer)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("garbage and empty", func(t *testing.T) {
		service := NewOAuthStateService("test-secret", newMemoryNonces())

		_, err := service.Decode(ctx, "not-a-token", models.OAuthAuthTypeServer)
		assert.ErrorIs(t, err, core.ErrUnauthorized)

		_, err = service.Decode(ctx, "", models.OAuthAuthTypeServer)
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})
}

func TestNoopNoncesRepository(t *testing.T) {
	ctx := context.Background()
	service := NewOAuthStateService("test-secret", NewNoopNoncesRepository())
	token, err := service.Encode(ctx, models.OAuthState{AuthType: models.OAuthAuthTypeUser, UserID: "u_01"})
	require.NoError(t, err)

	// without a nonce store a token stays valid until it expires
	_, err = service.Decode(ctx, token, models.OAuthAuthTypeUser)
	require.NoError(t, err)
	_, err = service.Decode(ctx, token, models.OAuthAuthTypeUser)
	require.NoError(t, err)
}

func TestOAuthStateService_Encode_RequiresAuthType(t *testing.T) {
	service := NewOAuthStateService("test-secret", newMemoryNonces())

	_, err := service.Encode(context.Background(), models.OAuthState{UserID: "u_01"})

	assert.Error(t, err)
}

func TestNewOAuthStateService_RequiresSecret(t *testing.T) {
	assert.Panics(t, func() { NewOAuthStateService("", NewNoopNoncesRepository()) })
}
