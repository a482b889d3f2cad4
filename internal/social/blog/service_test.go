// Copyright (c) 2026 BoiBritto. All rights reserved.

package blog_test

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/social/blog"
)

// # Test Doubles

// fakeBlogRepo is an in-memory BlogRepository.
type fakeBlogRepo struct {
	blogs map[string]*blog.Blog
	likes map[string]map[string]bool
	clock time.Time
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{
		blogs: make(map[string]*blog.Blog),
		likes: make(map[string]map[string]bool),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeBlogRepo) List(_ context.Context, filter blog.ListFilter, limit, offset int) ([]*blog.Blog, int, error) {
	var matched []*blog.Blog
	for _, b := range f.blogs {
		switch filter.Scope.Kind {
		case content.ScopeMine:
			if b.AuthorID != filter.Scope.OwnerID {
				continue
			}
		case content.ScopeUser:
			if b.AuthorID != filter.Scope.OwnerID || b.Visibility != content.VisibilityPublic {
				continue
			}
		default:
			if b.Visibility != content.VisibilityPublic {
				continue
			}
		}
		matched = append(matched, b)
	}
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeBlogRepo) RecentByOwner(_ context.Context, ownerID string, limit int) ([]*blog.Blog, error) {
	var owned []*blog.Blog
	for _, b := range f.blogs {
		if b.AuthorID == ownerID {
			owned = append(owned, b)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.After(owned[j].CreatedAt) })
	if len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

func (f *fakeBlogRepo) FindByID(_ context.Context, id string) (*blog.Blog, error) {
	b, ok := f.blogs[id]
	if !ok {
		return nil, apperr.NotFound("Blog")
	}
	clone := *b
	clone.LikeCount = len(f.likes[id])
	return &clone, nil
}

func (f *fakeBlogRepo) Create(_ context.Context, b *blog.Blog) error {
	f.clock = f.clock.Add(time.Minute)
	b.CreatedAt, b.UpdatedAt = f.clock, f.clock
	f.blogs[b.ID] = b
	return nil
}

func (f *fakeBlogRepo) Update(_ context.Context, b *blog.Blog) error {
	if _, ok := f.blogs[b.ID]; !ok {
		return apperr.NotFound("Blog")
	}
	f.blogs[b.ID] = b
	return nil
}

func (f *fakeBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.blogs[id]; !ok {
		return apperr.NotFound("Blog")
	}
	delete(f.blogs, id)
	return nil
}

func (f *fakeBlogRepo) AddLike(_ context.Context, blogID, userID string) (bool, error) {
	if f.likes[blogID] == nil {
		f.likes[blogID] = make(map[string]bool)
	}
	if f.likes[blogID][userID] {
		return false, nil
	}
	f.likes[blogID][userID] = true
	return true, nil
}

func (f *fakeBlogRepo) RemoveLike(_ context.Context, blogID, userID string) (bool, error) {
	if !f.likes[blogID][userID] {
		return false, nil
	}
	delete(f.likes[blogID], userID)
	return true, nil
}

func (f *fakeBlogRepo) CountLikes(_ context.Context, blogID string) (int, error) {
	return len(f.likes[blogID]), nil
}

func newService(repo *fakeBlogRepo) *blog.Service {
	return blog.NewService(repo, slog.New(slog.DiscardHandler))
}

// # Tests

func TestService_Create(t *testing.T) {
	service := newService(newFakeBlogRepo())

	t.Run("valid", func(t *testing.T) {
		created, err := service.Create(context.Background(), "author-1", blog.CreateInput{
			Title: "Why I reread Dune", Content: "Spice.", Genres: []string{"science_fiction"},
			Visibility: "public", SpoilerAlert: true,
		})
		require.NoError(t, err)
		assert.Equal(t, content.VisibilityPublic, created.Visibility)
		assert.True(t, created.SpoilerAlert)
	})

	t.Run("defaults_to_private", func(t *testing.T) {
		created, err := service.Create(context.Background(), "author-1", blog.CreateInput{
			Title: "Draft", Content: "wip",
		})
		require.NoError(t, err)
		assert.Equal(t, content.VisibilityPrivate, created.Visibility)
	})

	t.Run("requires_content", func(t *testing.T) {
		_, err := service.Create(context.Background(), "author-1", blog.CreateInput{Title: "No body"})
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("rejects_unknown_genre", func(t *testing.T) {
		_, err := service.Create(context.Background(), "author-1", blog.CreateInput{
			Title: "T", Content: "C", Genres: []string{"knitting"},
		})
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestService_Get_AccessGate(t *testing.T) {
	repo := newFakeBlogRepo()
	repo.blogs["priv"] = &blog.Blog{ID: "priv", AuthorID: "owner", Visibility: content.VisibilityPrivate}
	service := newService(repo)

	_, err := service.Get(context.Background(), "priv", "stranger")
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	_, err = service.Get(context.Background(), "priv", "owner")
	assert.NoError(t, err)
}

func TestService_Update_OwnershipEnforced(t *testing.T) {
	repo := newFakeBlogRepo()
	repo.blogs["b1"] = &blog.Blog{ID: "b1", AuthorID: "owner", Title: "T", Content: "C", Visibility: content.VisibilityPublic}
	service := newService(repo)

	title := "Hijacked"
	_, err := service.Update(context.Background(), "b1", "stranger", blog.UpdateInput{Title: &title})
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
}

func TestService_ToggleLike(t *testing.T) {
	repo := newFakeBlogRepo()
	repo.blogs["pub"] = &blog.Blog{ID: "pub", AuthorID: "owner", Visibility: content.VisibilityPublic}
	repo.blogs["priv"] = &blog.Blog{ID: "priv", AuthorID: "owner", Visibility: content.VisibilityPrivate}
	service := newService(repo)

	_, err := service.ToggleLike(context.Background(), "priv", "reader")
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	_, err = service.ToggleLike(context.Background(), "pub", "owner")
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)

	result, err := service.ToggleLike(context.Background(), "pub", "reader")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)

	result, err = service.ToggleLike(context.Background(), "pub", "reader")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.LikeCount)
}

func TestService_RecentByOwner(t *testing.T) {
	repo := newFakeBlogRepo()
	service := newService(repo)

	for i := 0; i < 7; i++ {
		_, err := service.Create(context.Background(), "owner", blog.CreateInput{
			Title: "Post", Content: "Body",
		})
		require.NoError(t, err)
	}

	recent, err := service.RecentByOwner(context.Background(), "owner", 5)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}
