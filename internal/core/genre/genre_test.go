// Copyright (c) 2026 BoiBritto. All rights reserved.

package genre_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boibritto/boibritto-api/internal/core/genre"
)

func TestIsValid(t *testing.T) {
	assert.True(t, genre.IsValid("fantasy"))
	assert.True(t, genre.IsValid("other"))
	assert.False(t, genre.IsValid("Fantasy"))
	assert.False(t, genre.IsValid("cooking"))
	assert.False(t, genre.IsValid(""))
}

func TestInvalid(t *testing.T) {
	assert.Empty(t, genre.Invalid(nil))
	assert.Empty(t, genre.Invalid([]string{"romance", "horror"}))
	assert.Equal(t, "cooking", genre.Invalid([]string{"romance", "cooking", "also_bad"}))
}

func TestAllowed(t *testing.T) {
	allowed := genre.Allowed()
	assert.Len(t, allowed, 20)
	for _, g := range allowed {
		assert.True(t, genre.IsValid(g))
	}
}
