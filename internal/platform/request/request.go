// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the
body-envelope decoding convention, ensuring consistent error handling and
type safety across handlers.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/ctxutil"
	"github.com/boibritto/boibritto-api/internal/platform/sec"
	"github.com/boibritto/boibritto-api/internal/platform/validate"
)

// dataEnvelope mirrors the client convention of wrapping every mutating
// request body in a {"data": {...}} object.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeData unwraps the {"data": {...}} envelope and decodes the inner
object into the target structure.

All mutating endpoints accept this envelope. A missing or null "data" key
is treated as an invalid payload.
*/
func DecodeData(request *http.Request, target interface{}) error {
	var envelope dataEnvelope
	if err := json.NewDecoder(request.Body).Decode(&envelope); err != nil {
		return validate.ErrInvalidJSON
	}
	if len(envelope.Data) == 0 {
		return validate.ErrInvalidJSON
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the verified token claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request carries a verified token and returns its claims.

Returns:
  - *sec.AuthClaims: The verified token claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
RequiredUserID returns the local account UUID of the requester.

The account UUID is resolved from the token subject by the identity
middleware. A verified token whose subject has never signed in (no account
row yet) is rejected; such callers must hit the auth sync endpoint first.

Returns:
  - string: Account UUID
  - error: apperr.Unauthorized if not authenticated or not registered
*/
func RequiredUserID(request *http.Request) (string, error) {
	if _, err := RequiredClaims(request); err != nil {
		return "", err
	}

	accountID := ctxutil.GetAccountID(request.Context())
	if accountID == "" {
		return "", apperr.Unauthorized("Account not registered")
	}

	return accountID, nil
}

/*
UserID returns the requester's account UUID, or "" for anonymous or
unregistered callers. List endpoints use it to widen visibility filters.
*/
func UserID(request *http.Request) string {
	return ctxutil.GetAccountID(request.Context())
}
