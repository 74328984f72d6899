package oauthstate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fundbackend/core"
	"fundbackend/models"
	"fundbackend/utils"
)

// DefaultTTL bounds how long a user may take on Discord's consent screen
const DefaultTTL = 10 * time.Minute

// NoncesRepository makes issued state tokens single-use
type NoncesRepository interface {
	Remember(ctx context.Context, nonce string, ttl time.Duration) error
	Consume(ctx context.Context, nonce string) (bool, error)
}

type stateClaims struct {
	AuthType models.OAuthAuthType `json:"auth_type"`
	OrgID    string               `json:"org_id,omitempty"`
	OrgName  string               `json:"org_name,omitempty"`
	UserID   string               `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

type OAuthStateService struct {
	secret []byte
	nonces NoncesRepository
	ttl    time.Duration
	now    func() time.Time
}

func NewOAuthStateService(secret string, nonces NoncesRepository) *OAuthStateService {
	utils.AssertInvariant(secret != "", "oauth state secret must not be empty")

	return &OAuthStateService{
		secret: []byte(secret),
		nonces: nonces,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
}

// Encode signs the state as an HS256 token and remembers its nonce
func (s *OAuthStateService) Encode(ctx context.Context, state models.OAuthState) (string, error) {
	if state.AuthType == "" {
		return "", fmt.Errorf("oauth state auth type cannot be empty")
	}

	now := s.now()
	nonce := uuid.NewString()
	claims := stateClaims{
		AuthType: state.AuthType,
		OrgID:    state.OrganizationID,
		OrgName:  state.OrganizationName,
		UserID:   state.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign oauth state: %w", err)
	}

	if err := s.nonces.Remember(ctx, nonce, s.ttl); err != nil {
		return "", fmt.Errorf("failed to remember oauth state nonce: %w", err)
	}

	return token, nil
}

// Decode verifies signature, expiry and auth type, then consumes the nonce.
// Every rejection is reported as core.ErrUnauthorized.
func (s *OAuthStateService) Decode(
	ctx context.Context,
	token string,
	expectedType models.OAuthAuthType,
) (models.OAuthState, error) {
	if token == "" {
		return models.OAuthState{}, fmt.Errorf("missing oauth state: %w", core.ErrUnauthorized)
	}

	claims := &stateClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Printf("⚠️ Rejected expired oauth state")
		}
		return models.OAuthState{}, fmt.Errorf("invalid oauth state: %w", core.ErrUnauthorized)
	}

	if claims.AuthType != expectedType {
		return models.OAuthState{}, fmt.Errorf(
			"invalid oauth auth type %q, expected %q: %w",
			claims.AuthType,
			expectedType,
			core.ErrUnauthorized,
		)
	}

	consumed, err := s.nonces.Consume(ctx, claims.ID)
	if err != nil {
		return models.OAuthState{}, fmt.Errorf("failed to consume oauth state nonce: %w", err)
	}
	if !consumed {
		return models.OAuthState{}, fmt.Errorf("oauth state already used: %w", core.ErrUnauthorized)
	}

	return models.OAuthState{
		AuthType:         claims.AuthType,
		OrganizationID:   claims.OrgID,
		OrganizationName: claims.OrgName,
		UserID:           claims.UserID,
	}, nil
}
