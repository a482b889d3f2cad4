// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package sec provides verification of externally-issued identity tokens.
//
// # Architecture
//
// BoiBritto does not issue credentials of its own. Clients authenticate
// against an external identity provider and present its RS256-signed ID
// token as a bearer token. This package isolates the security-sensitive
// verification code from the domain logic; it is injected into the
// middleware via the [middleware.TokenVerifier] interface.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside an external ID token.
//
// # Why custom claims?
//
// The issuer embeds the stable subject (uid), email, and display name in the
// token, so the middleware can reconstruct the caller's identity WITHOUT a
// database round-trip on every request. The uid->account resolution that
// endpoints need is layered on top, behind a Redis cache.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UID is the immutable external identity of the user. It mirrors the
	// registered Subject claim; some issuers emit both.
	UID string `json:"user_id,omitempty"`

	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// SubjectUID returns the stable external identity of the token holder,
// preferring the explicit user_id claim over the registered subject.
func (c *AuthClaims) SubjectUID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject
}

// TokenVerifier validates RS256 ID tokens against the issuer's public key.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
}

// NewTokenVerifier creates a new TokenVerifier.
// It reads the issuer's RSA public key from the provided filesystem path.
func NewTokenVerifier(publicKeyPath, issuer string) (*TokenVerifier, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return &TokenVerifier{
		publicKey: publicKey,
		issuer:    issuer,
	}, nil
}

// VerifyToken checks the signature, expiry, and issuer of an ID token string.
func (verifier *TokenVerifier) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return verifier.publicKey, nil
	}, jwt.WithIssuer(verifier.issuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.SubjectUID() == "" {
		return nil, fmt.Errorf("sec: token carries no subject")
	}

	return claims, nil
}
