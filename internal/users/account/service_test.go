// Copyright (c) 2026 BoiBritto. All rights reserved.

package account_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boibritto/boibritto-api/internal/library/collection"
	"github.com/boibritto/boibritto-api/internal/library/reading"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/sec"
	"github.com/boibritto/boibritto-api/internal/social/blog"
	"github.com/boibritto/boibritto-api/internal/users/account"
)

// # Fakes

type fakeAccountRepo struct {
	byID       map[string]*account.User
	createdIDs []string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: make(map[string]*account.User)}
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*account.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (f *fakeAccountRepo) FindByUID(_ context.Context, uid string) (*account.User, error) {
	for _, user := range f.byID {
		if user.UID == uid {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*account.User, error) {
	for _, user := range f.byID {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeAccountRepo) Create(_ context.Context, user *account.User) error {
	for _, existing := range f.byID {
		if existing.UID == user.UID || existing.Email == user.Email {
			return apperr.Conflict("An account with this identity already exists")
		}
		if existing.Username == user.Username {
			return apperr.Conflict("Username is already taken")
		}
	}
	user.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.byID[user.ID] = &clone
	f.createdIDs = append(f.createdIDs, user.ID)
	return nil
}

func (f *fakeAccountRepo) UpdateProfile(_ context.Context, user *account.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	for _, existing := range f.byID {
		if existing.ID != user.ID && existing.Username == user.Username {
			return apperr.Conflict("Username is already taken")
		}
	}
	clone := *user
	f.byID[user.ID] = &clone
	return nil
}

type fakeIdentityCache struct {
	entries     map[string]string
	setCalls    int
	invalidated []string
}

func newFakeIdentityCache() *fakeIdentityCache {
	return &fakeIdentityCache{entries: make(map[string]string)}
}

func (f *fakeIdentityCache) Get(_ context.Context, uid string) (string, error) {
	accountID, ok := f.entries[uid]
	if !ok {
		return "", apperr.NotFound("Identity")
	}
	return accountID, nil
}

func (f *fakeIdentityCache) Set(_ context.Context, uid, accountID string, _ time.Duration) error {
	f.setCalls++
	f.entries[uid] = accountID
	return nil
}

func (f *fakeIdentityCache) Invalidate(_ context.Context, uid string) error {
	f.invalidated = append(f.invalidated, uid)
	delete(f.entries, uid)
	return nil
}

type fixture struct {
	repo    *fakeAccountRepo
	cache   *fakeIdentityCache
	service *account.Service
}

func newFixture() *fixture {
	repo := newFakeAccountRepo()
	cache := newFakeIdentityCache()
	return &fixture{
		repo:    repo,
		cache:   cache,
		service: account.NewService(repo, cache, slog.New(slog.DiscardHandler)),
	}
}

func claims(uid, email, name string) *sec.AuthClaims {
	return &sec.AuthClaims{UID: uid, Email: email, Name: name}
}

// # Bootstrapping

func TestService_Sync_FirstSignIn(t *testing.T) {
	f := newFixture()

	user, created, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", "Ira K"), account.SyncInput{})
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "ira", user.Username)
	assert.Equal(t, "Ira K", user.DisplayName)
	assert.NotEmpty(t, user.ID)

	// The identity cache is primed so the next request skips the database.
	cached, err := f.cache.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, cached)
}

func TestService_Sync_Idempotent(t *testing.T) {
	f := newFixture()

	first, created, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", "Ira"), account.SyncInput{})
	require.NoError(t, err)
	require.True(t, created)

	// A repeat sign-in returns the existing row untouched, even when the
	// client supplies a different profile seed.
	second, created, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", "Someone Else"), account.SyncInput{
		Username:    "other_handle",
		DisplayName: "Other",
	})
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Username, second.Username)
	assert.Equal(t, first.DisplayName, second.DisplayName)
	assert.Len(t, f.repo.createdIDs, 1)
}

func TestService_Sync_UsernameDerivation(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"email_local_part", "bookworm@example.com", "bookworm"},
		{"punctuation_stripped", "Ira.Khan+news@example.com", "irakhannews"},
		{"short_local_part_falls_back", "io@example.com", "reader_uidfallb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			user, _, err := f.service.Sync(context.Background(), claims("uid-fallback", tt.email, ""), account.SyncInput{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, user.Username)
		})
	}
}

func TestService_Sync_ExplicitUsernameWins(t *testing.T) {
	f := newFixture()

	user, _, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", ""), account.SyncInput{Username: "night_reader"})
	require.NoError(t, err)
	assert.Equal(t, "night_reader", user.Username)
}

func TestService_Sync_Validation(t *testing.T) {
	f := newFixture()

	t.Run("bad_username_rejected", func(t *testing.T) {
		_, _, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", ""), account.SyncInput{Username: "No Spaces"})
		assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	})

	t.Run("unknown_genre_rejected", func(t *testing.T) {
		_, _, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", ""), account.SyncInput{Genres: []string{"vogon_poetry"}})
		assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	})
}

// # Identity Resolution

func TestService_ResolveUID(t *testing.T) {
	f := newFixture()
	user, _, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", ""), account.SyncInput{})
	require.NoError(t, err)

	t.Run("cache_hit", func(t *testing.T) {
		setCalls := f.cache.setCalls
		accountID, err := f.service.ResolveUID(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, accountID)
		assert.Equal(t, setCalls, f.cache.setCalls, "a hit must not rewrite the cache")
	})

	t.Run("cache_miss_reprimes", func(t *testing.T) {
		require.NoError(t, f.cache.Invalidate(context.Background(), "uid-1"))

		accountID, err := f.service.ResolveUID(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, accountID)

		cached, err := f.cache.Get(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, cached)
	})

	t.Run("unknown_subject_404", func(t *testing.T) {
		_, err := f.service.ResolveUID(context.Background(), "uid-nobody")
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
	})
}

// # Profile Operations

func TestService_UpdateProfile(t *testing.T) {
	f := newFixture()
	user, _, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", "Ira"), account.SyncInput{})
	require.NoError(t, err)

	bio := "Reads everything."
	updated, err := f.service.UpdateProfile(context.Background(), user.ID, account.UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, user.Username, updated.Username)

	// The stale uid mapping is dropped so the next request re-reads the row.
	assert.Contains(t, f.cache.invalidated, "uid-1")
}

func TestService_UpdateProfile_UsernameConflict(t *testing.T) {
	f := newFixture()
	_, _, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", ""), account.SyncInput{})
	require.NoError(t, err)
	other, _, err := f.service.Sync(context.Background(), claims("uid-2", "noor@example.com", ""), account.SyncInput{})
	require.NoError(t, err)

	taken := "ira"
	_, err = f.service.UpdateProfile(context.Background(), other.ID, account.UpdateProfileInput{Username: &taken})
	assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
}

func TestService_PublicByUsername(t *testing.T) {
	f := newFixture()
	_, _, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", "Ira"), account.SyncInput{})
	require.NoError(t, err)

	profile, err := f.service.PublicByUsername(context.Background(), "ira")
	require.NoError(t, err)
	assert.Equal(t, "ira", profile.Username)

	_, err = f.service.PublicByUsername(context.Background(), "ghost")
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

// # Overview

type fakeCollectionLister struct{ items []*collection.Collection }

func (f *fakeCollectionLister) RecentByOwner(_ context.Context, _ string, _ int) ([]*collection.Collection, error) {
	return f.items, nil
}

type fakeReadingLister struct{ items []*reading.Entry }

func (f *fakeReadingLister) RecentByOwner(_ context.Context, _ string, _ int) ([]*reading.Entry, error) {
	return f.items, nil
}

type fakeBlogLister struct{ items []*blog.Blog }

func (f *fakeBlogLister) RecentByOwner(_ context.Context, _ string, _ int) ([]*blog.Blog, error) {
	return f.items, nil
}

func TestService_Overview(t *testing.T) {
	f := newFixture()
	user, _, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", "Ira"), account.SyncInput{})
	require.NoError(t, err)

	f.service.WithOverviewSources(
		&fakeCollectionLister{items: []*collection.Collection{{ID: "col-1", OwnerID: user.ID}}},
		&fakeReadingLister{items: []*reading.Entry{{ID: "re-1", OwnerID: user.ID}}},
		&fakeBlogLister{items: []*blog.Blog{{ID: "blog-1", AuthorID: user.ID}}},
	)

	overview, err := f.service.Overview(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, overview.User.ID)
	require.Len(t, overview.Collections, 1)
	assert.Equal(t, "col-1", overview.Collections[0].ID)
	require.Len(t, overview.ReadingEntries, 1)
	assert.Equal(t, "re-1", overview.ReadingEntries[0].ID)
	require.Len(t, overview.Blogs, 1)
	assert.Equal(t, "blog-1", overview.Blogs[0].ID)
}

func TestService_Overview_NoSources(t *testing.T) {
	f := newFixture()
	user, _, err := f.service.Sync(context.Background(), claims("uid-1", "ira@example.com", "Ira"), account.SyncInput{})
	require.NoError(t, err)

	overview, err := f.service.Overview(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, overview.User.ID)
	assert.Empty(t, overview.Collections)
	assert.Empty(t, overview.ReadingEntries)
	assert.Empty(t, overview.Blogs)
}
