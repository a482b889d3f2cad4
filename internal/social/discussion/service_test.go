// Copyright (c) 2026 BoiBritto. All rights reserved.

package discussion_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/social/discussion"
)

// # Test Doubles

// fakeDiscussionRepo is an in-memory DiscussionRepository.
type fakeDiscussionRepo struct {
	discussions  map[string]*discussion.Discussion
	commentCount map[string]int
}

func newFakeDiscussionRepo() *fakeDiscussionRepo {
	return &fakeDiscussionRepo{
		discussions:  make(map[string]*discussion.Discussion),
		commentCount: make(map[string]int),
	}
}

func (f *fakeDiscussionRepo) List(_ context.Context, filter discussion.ListFilter, limit, offset int) ([]*discussion.Discussion, int, error) {
	var matched []*discussion.Discussion
	for _, d := range f.discussions {
		switch filter.Scope.Kind {
		case content.ScopeMine:
			if d.AuthorID != filter.Scope.OwnerID {
				continue
			}
		case content.ScopeUser:
			if d.AuthorID != filter.Scope.OwnerID || d.Visibility != content.VisibilityPublic {
				continue
			}
		default:
			if d.Visibility != content.VisibilityPublic {
				continue
			}
		}
		matched = append(matched, d)
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

func (f *fakeDiscussionRepo) FindByID(_ context.Context, id string) (*discussion.Discussion, error) {
	d, ok := f.discussions[id]
	if !ok {
		return nil, apperr.NotFound("Discussion")
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDiscussionRepo) Create(_ context.Context, d *discussion.Discussion) error {
	f.discussions[d.ID] = d
	return nil
}

func (f *fakeDiscussionRepo) Update(_ context.Context, d *discussion.Discussion) error {
	if _, ok := f.discussions[d.ID]; !ok {
		return apperr.NotFound("Discussion")
	}
	f.discussions[d.ID] = d
	return nil
}

func (f *fakeDiscussionRepo) DeleteWithComments(_ context.Context, id string) (int, error) {
	if _, ok := f.discussions[id]; !ok {
		return 0, apperr.NotFound("Discussion")
	}
	deleted := f.commentCount[id]
	delete(f.discussions, id)
	delete(f.commentCount, id)
	return deleted, nil
}

func newService(repo *fakeDiscussionRepo) *discussion.Service {
	return discussion.NewService(repo, slog.New(slog.DiscardHandler))
}

// # Tests

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   discussion.CreateInput
		wantErr bool
	}{
		{
			name:  "valid",
			input: discussion.CreateInput{Title: "Best fantasy endings", Content: "Discuss.", Genres: []string{"fantasy"}, SpoilerAlert: true},
		},
		{
			name:    "missing_title",
			input:   discussion.CreateInput{Content: "Body"},
			wantErr: true,
		},
		{
			name:    "missing_content",
			input:   discussion.CreateInput{Title: "T"},
			wantErr: true,
		},
		{
			name:    "unknown_genre",
			input:   discussion.CreateInput{Title: "T", Content: "C", Genres: []string{"gardening"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(newFakeDiscussionRepo())

			created, err := service.Create(context.Background(), "author-1", tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, content.VisibilityPublic, created.Visibility, "discussions are always created public")
			assert.Equal(t, tt.input.SpoilerAlert, created.SpoilerAlert)
		})
	}
}

func TestService_Get_AccessGate(t *testing.T) {
	repo := newFakeDiscussionRepo()
	repo.discussions["pub"] = &discussion.Discussion{ID: "pub", AuthorID: "owner", Visibility: content.VisibilityPublic}
	repo.discussions["friends"] = &discussion.Discussion{ID: "friends", AuthorID: "owner", Visibility: content.VisibilityFriends}
	service := newService(repo)

	_, err := service.Get(context.Background(), "pub", "stranger")
	assert.NoError(t, err)

	_, err = service.Get(context.Background(), "friends", "stranger")
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	_, err = service.Get(context.Background(), "friends", "owner")
	assert.NoError(t, err)
}

func TestService_Update_OwnershipEnforced(t *testing.T) {
	repo := newFakeDiscussionRepo()
	repo.discussions["d1"] = &discussion.Discussion{
		ID: "d1", AuthorID: "owner", Title: "T", Content: "C", Visibility: content.VisibilityPublic,
	}
	service := newService(repo)

	title := "Hijacked"
	_, err := service.Update(context.Background(), "d1", "stranger", discussion.UpdateInput{Title: &title})
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	updated, err := service.Update(context.Background(), "d1", "owner", discussion.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Hijacked", updated.Title)
}

func TestService_Delete_CascadesComments(t *testing.T) {
	repo := newFakeDiscussionRepo()
	repo.discussions["d1"] = &discussion.Discussion{ID: "d1", AuthorID: "owner", Visibility: content.VisibilityPublic}
	repo.commentCount["d1"] = 7
	service := newService(repo)

	_, err := service.Delete(context.Background(), "d1", "stranger")
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	deleted, err := service.Delete(context.Background(), "d1", "owner")
	require.NoError(t, err)
	assert.Equal(t, 7, deleted)
}
