// Copyright (c) 2026 BoiBritto. All rights reserved.

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boibritto/boibritto-api/internal/core/content"
)

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name        string
		visibility  content.Visibility
		ownerID     string
		requesterID string
		want        bool
	}{
		{"public_anonymous", content.VisibilityPublic, "owner", "", true},
		{"public_stranger", content.VisibilityPublic, "owner", "stranger", true},
		{"private_owner", content.VisibilityPrivate, "owner", "owner", true},
		{"private_stranger", content.VisibilityPrivate, "owner", "stranger", false},
		{"private_anonymous", content.VisibilityPrivate, "owner", "", false},
		{"friends_owner", content.VisibilityFriends, "owner", "owner", true},
		{"friends_stranger", content.VisibilityFriends, "owner", "stranger", false},
		{"empty_owner_never_matches", content.VisibilityPrivate, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := content.CanAccess(tt.visibility, tt.ownerID, tt.requesterID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveScope(t *testing.T) {
	t.Run("absent_param_is_public", func(t *testing.T) {
		scope := content.ResolveScope("", "requester")
		assert.Equal(t, content.ScopePublic, scope.Kind)
		assert.Empty(t, scope.OwnerID)
	})

	t.Run("me_binds_to_requester", func(t *testing.T) {
		scope := content.ResolveScope("me", "requester")
		assert.Equal(t, content.ScopeMine, scope.Kind)
		assert.Equal(t, "requester", scope.OwnerID)
	})

	t.Run("user_id_binds_to_that_user", func(t *testing.T) {
		scope := content.ResolveScope("someone-else", "requester")
		assert.Equal(t, content.ScopeUser, scope.Kind)
		assert.Equal(t, "someone-else", scope.OwnerID)
	})
}

func TestVisibility_Valid(t *testing.T) {
	assert.True(t, content.VisibilityPrivate.Valid())
	assert.True(t, content.VisibilityPublic.Valid())
	assert.True(t, content.VisibilityFriends.Valid())
	assert.False(t, content.Visibility("secret").Valid())
	assert.False(t, content.Visibility("").Valid())
}
