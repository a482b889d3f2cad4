// Copyright (c) 2026 BoiBritto. All rights reserved.

package collection_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/library/collection"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
)

// # Test Doubles

// fakeCollectionRepo is an in-memory CollectionRepository.
type fakeCollectionRepo struct {
	collections map[string]*collection.Collection
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{collections: make(map[string]*collection.Collection)}
}

func (f *fakeCollectionRepo) List(_ context.Context, filter collection.ListFilter, limit, offset int) ([]*collection.Collection, int, error) {
	var matched []*collection.Collection
	for _, c := range f.collections {
		switch filter.Scope.Kind {
		case content.ScopeMine:
			if c.OwnerID != filter.Scope.OwnerID {
				continue
			}
		case content.ScopeUser:
			if c.OwnerID != filter.Scope.OwnerID || c.Visibility != content.VisibilityPublic {
				continue
			}
		default:
			if c.Visibility != content.VisibilityPublic {
				continue
			}
		}
		matched = append(matched, c)
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

func (f *fakeCollectionRepo) RecentByOwner(ctx context.Context, ownerID string, limit int) ([]*collection.Collection, error) {
	matched, _, err := f.List(ctx, collection.ListFilter{
		Scope: content.Scope{Kind: content.ScopeMine, OwnerID: ownerID},
	}, limit, 0)
	return matched, err
}

func (f *fakeCollectionRepo) FindByID(_ context.Context, id string) (*collection.Collection, error) {
	c, ok := f.collections[id]
	if !ok {
		return nil, apperr.NotFound("Collection")
	}
	clone := *c
	clone.Volumes = append([]collection.Item(nil), c.Volumes...)
	return &clone, nil
}

func (f *fakeCollectionRepo) Create(_ context.Context, c *collection.Collection) error {
	for i := range c.Volumes {
		c.Volumes[i].AddedAt = time.Now()
	}
	f.collections[c.ID] = c
	return nil
}

func (f *fakeCollectionRepo) Update(_ context.Context, c *collection.Collection) error {
	stored, ok := f.collections[c.ID]
	if !ok {
		return apperr.NotFound("Collection")
	}
	c.Volumes = stored.Volumes
	f.collections[c.ID] = c
	return nil
}

func (f *fakeCollectionRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.collections[id]; !ok {
		return apperr.NotFound("Collection")
	}
	delete(f.collections, id)
	return nil
}

func (f *fakeCollectionRepo) AddVolume(_ context.Context, collectionID, volumeID string) (bool, error) {
	c, ok := f.collections[collectionID]
	if !ok {
		return false, apperr.NotFound("Collection")
	}
	for _, item := range c.Volumes {
		if item.VolumeID == volumeID {
			return false, nil
		}
	}
	c.Volumes = append(c.Volumes, collection.Item{VolumeID: volumeID, AddedAt: time.Now()})
	return true, nil
}

func (f *fakeCollectionRepo) RemoveVolume(_ context.Context, collectionID, volumeID string) (bool, error) {
	c, ok := f.collections[collectionID]
	if !ok {
		return false, apperr.NotFound("Collection")
	}
	for i, item := range c.Volumes {
		if item.VolumeID == volumeID {
			c.Volumes = append(c.Volumes[:i], c.Volumes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCollectionRepo) CountVolumes(_ context.Context, collectionID string) (int, error) {
	c, ok := f.collections[collectionID]
	if !ok {
		return 0, apperr.NotFound("Collection")
	}
	return len(c.Volumes), nil
}

func newService(repo *fakeCollectionRepo) *collection.Service {
	return collection.NewService(repo, slog.New(slog.DiscardHandler))
}

// # Tests

func TestService_Create(t *testing.T) {
	service := newService(newFakeCollectionRepo())

	t.Run("dedupes_volumes", func(t *testing.T) {
		created, err := service.Create(context.Background(), "owner", collection.CreateInput{
			Title:   "Summer reads",
			Volumes: []string{"vol-1", "vol-2", "vol-1", " ", "vol-3"},
		})
		require.NoError(t, err)
		require.Len(t, created.Volumes, 3)
		assert.Equal(t, "vol-1", created.Volumes[0].VolumeID)
		assert.Equal(t, content.VisibilityPrivate, created.Visibility)
	})

	t.Run("requires_title", func(t *testing.T) {
		_, err := service.Create(context.Background(), "owner", collection.CreateInput{})
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

func TestService_Get_AccessGate(t *testing.T) {
	repo := newFakeCollectionRepo()
	repo.collections["priv"] = &collection.Collection{ID: "priv", OwnerID: "owner", Visibility: content.VisibilityPrivate}
	service := newService(repo)

	_, err := service.Get(context.Background(), "priv", "stranger")
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	_, err = service.Get(context.Background(), "priv", "owner")
	assert.NoError(t, err)
}

func TestService_VolumeMembership(t *testing.T) {
	repo := newFakeCollectionRepo()
	repo.collections["c1"] = &collection.Collection{ID: "c1", OwnerID: "owner", Title: "T", Visibility: content.VisibilityPublic}
	service := newService(repo)

	t.Run("owner_adds", func(t *testing.T) {
		updated, err := service.AddVolume(context.Background(), "c1", "owner", "vol-1")
		require.NoError(t, err)
		assert.Len(t, updated.Volumes, 1)
	})

	t.Run("duplicate_conflicts", func(t *testing.T) {
		_, err := service.AddVolume(context.Background(), "c1", "owner", "vol-1")
		assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
	})

	t.Run("stranger_blocked", func(t *testing.T) {
		_, err := service.AddVolume(context.Background(), "c1", "stranger", "vol-2")
		assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
	})

	t.Run("remove_missing_404", func(t *testing.T) {
		_, err := service.RemoveVolume(context.Background(), "c1", "owner", "vol-9")
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
	})

	t.Run("owner_removes", func(t *testing.T) {
		updated, err := service.RemoveVolume(context.Background(), "c1", "owner", "vol-1")
		require.NoError(t, err)
		assert.Empty(t, updated.Volumes)
	})
}

func TestService_Delete_OwnershipEnforced(t *testing.T) {
	repo := newFakeCollectionRepo()
	repo.collections["c1"] = &collection.Collection{ID: "c1", OwnerID: "owner", Visibility: content.VisibilityPublic}
	service := newService(repo)

	err := service.Delete(context.Background(), "c1", "stranger")
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	require.NoError(t, service.Delete(context.Background(), "c1", "owner"))
}
