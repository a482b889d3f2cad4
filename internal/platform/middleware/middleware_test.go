// Copyright (c) 2026 BoiBritto. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boibritto/boibritto-api/internal/platform/constants"
	"github.com/boibritto/boibritto-api/internal/platform/middleware"
)

func TestRateLimit_Returns429Envelope(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	var limited *httptest.ResponseRecorder
	for i := 0; i <= constants.DefaultRateLimitBurst*2; i++ {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		request.RemoteAddr = "203.0.113.7:40000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		if recorder.Code == http.StatusTooManyRequests {
			limited = recorder
			break
		}
	}
	require.NotNil(t, limited, "burst was never exhausted")

	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(limited.Body.Bytes(), &payload))
	assert.Equal(t, false, payload[constants.FieldSuccess])
	assert.Equal(t, "RATE_LIMITED", payload[constants.FieldCode])
	assert.Contains(t, payload[constants.FieldMessage], "Too many requests")
}

func TestRateLimit_IsolatesClientsByIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	// Exhaust one client's bucket.
	for i := 0; i <= constants.DefaultRateLimitBurst*2; i++ {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		request.RemoteAddr = "203.0.113.8:40000"
		handler.ServeHTTP(httptest.NewRecorder(), request)
	}

	// A different client is unaffected.
	request := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	request.RemoteAddr = "203.0.113.9:40000"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
