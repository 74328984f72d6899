package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwks"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"

	"fundbackend/appctx"
	"fundbackend/services"
)

// sessionCookieName is the cookie Clerk's frontend SDK stores the session token in
const sessionCookieName = "__session"

// IdentityFetcher resolves the username and email behind a verified Clerk subject
type IdentityFetcher func(ctx context.Context, subject string) (username, email string, err error)

// ClerkAuthMiddleware handles JWT authentication using Clerk SDK
type ClerkAuthMiddleware struct {
	usersService  services.UsersService
	clerkJWKS     *jwks.Client
	fetchIdentity IdentityFetcher
}

// NewClerkAuthMiddleware creates a new authentication middleware instance
func NewClerkAuthMiddleware(usersService services.UsersService, clerkSecretKey string) *ClerkAuthMiddleware {
	config := &clerk.ClientConfig{
		BackendConfig: clerk.BackendConfig{
			Key: clerk.String(clerkSecretKey),
		},
	}

	return &ClerkAuthMiddleware{
		usersService:  usersService,
		clerkJWKS:     jwks.NewClient(config),
		fetchIdentity: clerkIdentityFetcher(user.NewClient(config)),
	}
}

func clerkIdentityFetcher(client *user.Client) IdentityFetcher {
	return func(ctx context.Context, subject string) (string, string, error) {
		clerkUser, err := client.Get(ctx, subject)
		if err != nil {
			return "", "", fmt.Errorf("failed to get clerk user %s: %w", subject, err)
		}

		var username string
		if clerkUser.Username != nil {
			username = *clerkUser.Username
		}

		var email string
		for _, address := range clerkUser.EmailAddresses {
			if address == nil {
				continue
			}
			if email == "" || (clerkUser.PrimaryEmailAddressID != nil && address.ID == *clerkUser.PrimaryEmailAddressID) {
				email = address.EmailAddress
			}
		}

		return username, email, nil
	}
}

// WithAuth wraps an HTTP handler with JWT authentication.
// The session token is read from the Authorization header, falling back to the Clerk session cookie.
func (m *ClerkAuthMiddleware) WithAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("🔐 Authentication middleware processing request from %s", r.RemoteAddr)

		// Check if we're in testing mode
		if os.Getenv("TESTING_MODE") == "true" {
			log.Printf("🧪 Testing mode enabled - skipping Clerk validation")
			testUser, err := m.usersService.GetOrCreateUser(
				r.Context(), "test", "test-user-123", "test-user", "test-user@example.com",
			)
			if err != nil {
				log.Printf("❌ Failed to get or create test user: %v", err)
				m.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
				return
			}

			log.Printf("✅ Test user resolved: %s", testUser.ID)
			next(w, r.WithContext(appctx.SetUser(r.Context(), testUser)))
			return
		}

		token, errMessage := sessionToken(r)
		if errMessage != "" {
			log.Printf("❌ %s", errMessage)
			m.writeErrorResponse(w, errMessage, http.StatusUnauthorized)
			return
		}

		// Verify JWT token using Clerk SDK
		claims, err := jwt.Verify(r.Context(), &jwt.VerifyParams{
			Token:      token,
			JWKSClient: m.clerkJWKS,
		})
		if err != nil {
			log.Printf("❌ JWT verification failed: %v", err)
			m.writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
			return
		}

		log.Printf("✅ JWT token verified successfully for user: %s", claims.Subject)
		username, email, err := m.fetchIdentity(r.Context(), claims.Subject)
		if err != nil {
			log.Printf("❌ Failed to fetch user identity: %v", err)
			m.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
			return
		}

		authenticatedUser, err := m.usersService.GetOrCreateUser(r.Context(), "clerk", claims.Subject, username, email)
		if err != nil {
			log.Printf("❌ Failed to get or create user: %v", err)
			m.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
			return
		}

		log.Printf("✅ User authenticated successfully: %s", authenticatedUser.ID)
		next(w, r.WithContext(appctx.SetUser(r.Context(), authenticatedUser)))
	}
}

// sessionToken returns the bearer token or a client-facing error message
func sessionToken(r *http.Request) (string, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			return "", "missing authorization header"
		}
		return cookie.Value, ""
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty bearer token"
	}
	return token, ""
}

// writeErrorResponse writes a standardized error response
func (m *ClerkAuthMiddleware) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("❌ Failed to encode error response: %v", err)
	}
}
