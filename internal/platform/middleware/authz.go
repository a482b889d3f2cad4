// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package middleware provides the HTTP middleware chain for the BoiBritto API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like logging, AuthZ/AuthN, rate limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/ctxkey"
	"github.com/boibritto/boibritto-api/internal/platform/ctxutil"
	"github.com/boibritto/boibritto-api/internal/platform/respond"
	"github.com/boibritto/boibritto-api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify ID tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `sec`
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// AccountResolver maps a verified external identity (uid) to the local
// account UUID. The production implementation lives in the account service
// and is backed by a Redis cache.
type AccountResolver interface {
	ResolveUID(ctx context.Context, uid string) (string, error)
}

// Authenticate extracts and verifies the ID token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the token via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// ResolveAccount resolves the verified token subject to a local account UUID
// and injects it into the request context.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. A token whose
// subject has no account yet (first sign-in) passes through without an
// account ID; the auth sync endpoint is the only one that accepts that
// state, so handlers relying on [ctxutil.GetAccountID] stay safe.
func ResolveAccount(resolver AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := GetUser(request.Context())
			if claims == nil {
				next.ServeHTTP(writer, request)
				return
			}

			accountID, err := resolver.ResolveUID(request.Context(), claims.SubjectUID())
			if err != nil {
				// Unknown uid is an expected state before the first sync.
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithAccountID(request.Context(), accountID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := GetUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// GetUser retrieves the [*sec.AuthClaims] from the [context.Context].
//
// # Returns
//   - A pointer to [*sec.AuthClaims] if the user is authenticated.
//   - nil if the user is anonymous.
func GetUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
