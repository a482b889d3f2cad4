// Copyright (c) 2026 BoiBritto. All rights reserved.

package book_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boibritto/boibritto-api/internal/core/book"
	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
)

// # Test Doubles

// fakeBookRepo is an in-memory BookRepository.
type fakeBookRepo struct {
	books         map[string]*book.Book
	likes         map[string]map[string]bool // bookID -> userID set
	chapterCount  map[string]int
	publicChapter map[string]bool
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:         make(map[string]*book.Book),
		likes:         make(map[string]map[string]bool),
		chapterCount:  make(map[string]int),
		publicChapter: make(map[string]bool),
	}
}

func (f *fakeBookRepo) List(_ context.Context, filter book.ListFilter, limit, offset int) ([]*book.Book, int, error) {
	var matched []*book.Book
	for _, b := range f.books {
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

func (f *fakeBookRepo) FindByID(_ context.Context, id string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	clone := *b
	clone.LikeCount = len(f.likes[id])
	return &clone, nil
}

func (f *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) Update(_ context.Context, b *book.Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return apperr.NotFound("Book")
	}
	b.UpdatedAt = time.Now()
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) DeleteWithChapters(_ context.Context, id string) (int, error) {
	if _, ok := f.books[id]; !ok {
		return 0, apperr.NotFound("Book")
	}
	deleted := f.chapterCount[id]
	delete(f.books, id)
	delete(f.chapterCount, id)
	delete(f.publicChapter, id)
	return deleted, nil
}

func (f *fakeBookRepo) CountChapters(_ context.Context, bookID string) (int, error) {
	return f.chapterCount[bookID], nil
}

func (f *fakeBookRepo) HasPublicChapters(_ context.Context, bookID string) (bool, error) {
	return f.publicChapter[bookID], nil
}

func (f *fakeBookRepo) AddLike(_ context.Context, bookID, userID string) (bool, error) {
	if f.likes[bookID] == nil {
		f.likes[bookID] = make(map[string]bool)
	}
	if f.likes[bookID][userID] {
		return false, nil
	}
	f.likes[bookID][userID] = true
	return true, nil
}

func (f *fakeBookRepo) RemoveLike(_ context.Context, bookID, userID string) (bool, error) {
	if !f.likes[bookID][userID] {
		return false, nil
	}
	delete(f.likes[bookID], userID)
	return true, nil
}

func (f *fakeBookRepo) CountLikes(_ context.Context, bookID string) (int, error) {
	return len(f.likes[bookID]), nil
}

// fakeChapterLister returns a canned summary set.
type fakeChapterLister struct {
	lastIncludePrivate bool
}

func (f *fakeChapterLister) SummariesForBook(_ context.Context, bookID string, includePrivate bool) ([]*content.ChapterSummary, error) {
	f.lastIncludePrivate = includePrivate
	return []*content.ChapterSummary{{ID: "c1", BookID: bookID, ChapterNumber: 1, Title: "Opening"}}, nil
}

func newService(repo *fakeBookRepo) *book.Service {
	return book.NewService(repo, slog.New(slog.DiscardHandler))
}

func seedBook(repo *fakeBookRepo, id, authorID string, visibility content.Visibility) *book.Book {
	b := &book.Book{
		ID:         id,
		AuthorID:   authorID,
		Title:      "Seeded Title",
		Genres:     []string{"fantasy"},
		Visibility: visibility,
	}
	repo.books[id] = b
	return b
}

// # Lifecycle Tests

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   book.CreateInput
		wantErr string
	}{
		{
			name:  "valid_minimal",
			input: book.CreateInput{Title: "My First Book"},
		},
		{
			name:  "valid_full",
			input: book.CreateInput{Title: "T", Synopsis: "s", Genres: []string{"fantasy", "horror"}, Visibility: "public"},
		},
		{
			name:    "missing_title",
			input:   book.CreateInput{Visibility: "public"},
			wantErr: "VALIDATION_ERROR",
		},
		{
			name:    "unknown_genre",
			input:   book.CreateInput{Title: "T", Genres: []string{"cooking"}},
			wantErr: "VALIDATION_ERROR",
		},
		{
			name:    "friends_visibility_rejected",
			input:   book.CreateInput{Title: "T", Visibility: "friends"},
			wantErr: "VALIDATION_ERROR",
		},
		{
			name:    "garbage_visibility_rejected",
			input:   book.CreateInput{Title: "T", Visibility: "everyone"},
			wantErr: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(newFakeBookRepo())

			created, err := service.Create(context.Background(), "author-1", tt.input)

			if tt.wantErr != "" {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, tt.wantErr, ae.Code)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, "author-1", created.AuthorID)
			assert.False(t, created.IsCompleted)
			assert.NotNil(t, created.Genres)
		})
	}
}

func TestService_Create_DefaultsToPrivate(t *testing.T) {
	service := newService(newFakeBookRepo())

	created, err := service.Create(context.Background(), "author-1", book.CreateInput{Title: "Untitled Draft"})

	require.NoError(t, err)
	assert.Equal(t, content.VisibilityPrivate, created.Visibility)
}

func TestService_Get_AccessGate(t *testing.T) {
	repo := newFakeBookRepo()
	seedBook(repo, "b1", "owner", content.VisibilityPrivate)
	seedBook(repo, "b2", "owner", content.VisibilityPublic)
	service := newService(repo)

	t.Run("owner_sees_private", func(t *testing.T) {
		detail, err := service.Get(context.Background(), "b1", "owner")
		require.NoError(t, err)
		assert.Equal(t, "b1", detail.ID)
	})

	t.Run("stranger_blocked_from_private", func(t *testing.T) {
		_, err := service.Get(context.Background(), "b1", "stranger")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	})

	t.Run("stranger_sees_public", func(t *testing.T) {
		detail, err := service.Get(context.Background(), "b2", "stranger")
		require.NoError(t, err)
		assert.Equal(t, "b2", detail.ID)
	})

	t.Run("unknown_book_404", func(t *testing.T) {
		_, err := service.Get(context.Background(), "missing", "owner")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})
}

func TestService_Get_ChapterVisibility(t *testing.T) {
	repo := newFakeBookRepo()
	seedBook(repo, "b1", "owner", content.VisibilityPublic)
	lister := &fakeChapterLister{}
	service := newService(repo).WithChapterLister(lister)

	detail, err := service.Get(context.Background(), "b1", "owner")
	require.NoError(t, err)
	assert.True(t, lister.lastIncludePrivate, "author should see private chapters")
	require.Len(t, detail.Chapters, 1)
	assert.Equal(t, "c1", detail.Chapters[0].ID)

	_, err = service.Get(context.Background(), "b1", "stranger")
	require.NoError(t, err)
	assert.False(t, lister.lastIncludePrivate, "non-authors only see public chapters")
}

// # Cascade Tests

func TestService_Update_PrivateBlockedByPublicChapters(t *testing.T) {
	repo := newFakeBookRepo()
	seedBook(repo, "b1", "owner", content.VisibilityPublic)
	repo.publicChapter["b1"] = true
	service := newService(repo)

	private := "private"
	_, err := service.Update(context.Background(), "b1", "owner", book.UpdateInput{Visibility: &private})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	// Harmless after the public chapters are gone.
	repo.publicChapter["b1"] = false
	updated, err := service.Update(context.Background(), "b1", "owner", book.UpdateInput{Visibility: &private})
	require.NoError(t, err)
	assert.Equal(t, content.VisibilityPrivate, updated.Visibility)
}

func TestService_Update_CompletionRequiresChapters(t *testing.T) {
	repo := newFakeBookRepo()
	seedBook(repo, "b1", "owner", content.VisibilityPublic)
	service := newService(repo)

	completed := true
	_, err := service.Update(context.Background(), "b1", "owner", book.UpdateInput{IsCompleted: &completed})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	repo.chapterCount["b1"] = 3
	updated, err := service.Update(context.Background(), "b1", "owner", book.UpdateInput{IsCompleted: &completed})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)

	// Unmarking is always allowed.
	notCompleted := false
	repo.chapterCount["b1"] = 0
	updated, err = service.Update(context.Background(), "b1", "owner", book.UpdateInput{IsCompleted: &notCompleted})
	require.NoError(t, err)
	assert.False(t, updated.IsCompleted)
}

func TestService_Update_OwnershipEnforced(t *testing.T) {
	repo := newFakeBookRepo()
	seedBook(repo, "b1", "owner", content.VisibilityPublic)
	service := newService(repo)

	title := "Hijacked"
	_, err := service.Update(context.Background(), "b1", "stranger", book.UpdateInput{Title: &title})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeBookRepo()
	seedBook(repo, "b1", "owner", content.VisibilityPublic)
	repo.chapterCount["b1"] = 4
	service := newService(repo)

	_, err := service.Delete(context.Background(), "b1", "stranger")
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	deleted, err := service.Delete(context.Background(), "b1", "owner")
	require.NoError(t, err)
	assert.Equal(t, 4, deleted)

	_, err = service.Get(context.Background(), "b1", "owner")
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

// # Like Toggle Tests

func TestService_ToggleLike(t *testing.T) {
	repo := newFakeBookRepo()
	seedBook(repo, "pub", "owner", content.VisibilityPublic)
	seedBook(repo, "priv", "owner", content.VisibilityPrivate)
	service := newService(repo)

	t.Run("private_book_rejected", func(t *testing.T) {
		_, err := service.ToggleLike(context.Background(), "priv", "reader")
		assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
	})

	t.Run("own_book_rejected", func(t *testing.T) {
		_, err := service.ToggleLike(context.Background(), "pub", "owner")
		assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	})

	t.Run("toggle_on_then_off", func(t *testing.T) {
		result, err := service.ToggleLike(context.Background(), "pub", "reader")
		require.NoError(t, err)
		assert.True(t, result.Liked)
		assert.Equal(t, 1, result.LikeCount)

		result, err = service.ToggleLike(context.Background(), "pub", "reader")
		require.NoError(t, err)
		assert.False(t, result.Liked)
		assert.Equal(t, 0, result.LikeCount)
	})

	t.Run("independent_users", func(t *testing.T) {
		_, err := service.ToggleLike(context.Background(), "pub", "reader-a")
		require.NoError(t, err)
		result, err := service.ToggleLike(context.Background(), "pub", "reader-b")
		require.NoError(t, err)
		assert.Equal(t, 2, result.LikeCount)
	})
}
