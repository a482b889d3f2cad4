// Copyright (c) 2026 BoiBritto. All rights reserved.

package comment_test

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
	"github.com/boibritto/boibritto-api/internal/social/comment"
	"github.com/boibritto/boibritto-api/internal/social/discussion"
)

// # Test Doubles

// fakeCommentRepo is an in-memory CommentRepository.
type fakeCommentRepo struct {
	comments map[string]*comment.Comment
	clock    time.Time
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[string]*comment.Comment),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeCommentRepo) ListByDiscussion(_ context.Context, discussionID string) ([]*comment.Comment, error) {
	var list []*comment.Comment
	for _, c := range f.comments {
		if c.DiscussionID == discussionID {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCommentRepo) Create(_ context.Context, c *comment.Comment) error {
	f.clock = f.clock.Add(time.Minute)
	c.CreatedAt = f.clock
	c.UpdatedAt = f.clock
	f.comments[c.ID] = c
	return nil
}

func (f *fakeCommentRepo) Update(_ context.Context, c *comment.Comment) error {
	if _, ok := f.comments[c.ID]; !ok {
		return apperr.NotFound("Comment")
	}
	f.comments[c.ID] = c
	return nil
}

func (f *fakeCommentRepo) DeleteWithReplies(_ context.Context, id string) (int, error) {
	if _, ok := f.comments[id]; !ok {
		return 0, apperr.NotFound("Comment")
	}
	deleted := 1
	delete(f.comments, id)
	for replyID, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(f.comments, replyID)
			deleted++
		}
	}
	return deleted, nil
}

// fakeDiscussions serves canned parent discussions.
type fakeDiscussions struct {
	discussions map[string]*discussion.Discussion
}

func (f *fakeDiscussions) FindByID(_ context.Context, id string) (*discussion.Discussion, error) {
	d, ok := f.discussions[id]
	if !ok {
		return nil, apperr.NotFound("Discussion")
	}
	return d, nil
}

type fixture struct {
	repo    *fakeCommentRepo
	service *comment.Service
}

func newFixture() *fixture {
	repo := newFakeCommentRepo()
	discussions := &fakeDiscussions{discussions: map[string]*discussion.Discussion{
		"d1": {ID: "d1", AuthorID: "host", Visibility: content.VisibilityPublic},
		"d2": {ID: "d2", AuthorID: "host", Visibility: content.VisibilityPublic},
	}}
	return &fixture{
		repo:    repo,
		service: comment.NewService(repo, discussions, slog.New(slog.DiscardHandler)),
	}
}

// # Tree Building

func TestBuildTree(t *testing.T) {
	parentA := "a"
	parentB := "b"
	flat := []*comment.Comment{
		{ID: "a"},
		{ID: "b"},
		{ID: "a1", ParentID: &parentA},
		{ID: "b1", ParentID: &parentB},
		{ID: "a2", ParentID: &parentA},
	}

	tree := comment.BuildTree(flat)

	require.Len(t, tree, 2)
	assert.Equal(t, "a", tree[0].ID)
	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, "a1", tree[0].Replies[0].ID)
	assert.Equal(t, "a2", tree[0].Replies[1].ID)
	require.Len(t, tree[1].Replies, 1)
	assert.Equal(t, "b1", tree[1].Replies[0].ID)
}

func TestBuildTree_Empty(t *testing.T) {
	assert.Empty(t, comment.BuildTree(nil))
}

// # Depth Rule

func TestService_Create_DepthRule(t *testing.T) {
	f := newFixture()

	// Scenario: top-level comment, then a reply, then a reply to the reply.
	top, err := f.service.Create(context.Background(), "d1", "alice", comment.CreateInput{Content: "First!"})
	require.NoError(t, err)
	assert.Nil(t, top.ParentID)

	reply, err := f.service.Create(context.Background(), "d1", "bob", comment.CreateInput{
		Content: "Replying", ParentID: &top.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)

	_, err = f.service.Create(context.Background(), "d1", "carol", comment.CreateInput{
		Content: "Too deep", ParentID: &reply.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Nothing was written for the rejected comment.
	tree, err := f.service.Tree(context.Background(), "d1", "alice")
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Len(t, tree[0].Replies, 1)
}

func TestService_Create_ParentInSameDiscussion(t *testing.T) {
	f := newFixture()

	top, err := f.service.Create(context.Background(), "d1", "alice", comment.CreateInput{Content: "On d1"})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), "d2", "bob", comment.CreateInput{
		Content: "Cross-thread reply", ParentID: &top.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_Create_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), "d1", "alice", comment.CreateInput{Content: "   "})
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = f.service.Create(context.Background(), "missing", "alice", comment.CreateInput{Content: "Hello"})
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

// # Tree Reading

func TestService_Tree_OrderedOldestFirst(t *testing.T) {
	f := newFixture()

	first, err := f.service.Create(context.Background(), "d1", "alice", comment.CreateInput{Content: "first"})
	require.NoError(t, err)
	second, err := f.service.Create(context.Background(), "d1", "bob", comment.CreateInput{Content: "second"})
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), "d1", "carol", comment.CreateInput{Content: "late reply", ParentID: &first.ID})
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), "d1", "dave", comment.CreateInput{Content: "later reply", ParentID: &first.ID})
	require.NoError(t, err)

	tree, err := f.service.Tree(context.Background(), "d1", "alice")
	require.NoError(t, err)

	require.Len(t, tree, 2)
	assert.Equal(t, first.ID, tree[0].ID)
	assert.Equal(t, second.ID, tree[1].ID)
	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, "late reply", tree[0].Replies[0].Content)
	assert.Equal(t, "later reply", tree[0].Replies[1].Content)
}

func TestService_Tree_EqualTimestampsKeepParentFirst(t *testing.T) {
	f := newFixture()

	// Same-instant writes rely on the time-ordered id as tiebreaker, so
	// the reply must still attach instead of being dropped.
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	parentID := "01000000-0000-7000-8000-00000000000a"
	replyID := "01000000-0000-7000-8000-00000000000b"
	f.repo.comments[parentID] = &comment.Comment{
		ID: parentID, DiscussionID: "d1", AuthorID: "alice",
		Content: "root", CreatedAt: ts, UpdatedAt: ts,
	}
	f.repo.comments[replyID] = &comment.Comment{
		ID: replyID, DiscussionID: "d1", AuthorID: "bob",
		ParentID: &parentID, Content: "reply", CreatedAt: ts, UpdatedAt: ts,
	}

	tree, err := f.service.Tree(context.Background(), "d1", "alice")
	require.NoError(t, err)

	require.Len(t, tree, 1)
	assert.Equal(t, parentID, tree[0].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, replyID, tree[0].Replies[0].ID)
}

// # Mutation

func TestService_Update_OwnershipEnforced(t *testing.T) {
	f := newFixture()
	created, err := f.service.Create(context.Background(), "d1", "alice", comment.CreateInput{Content: "Original"})
	require.NoError(t, err)

	edited := "Edited"
	_, err = f.service.Update(context.Background(), created.ID, "bob", comment.UpdateInput{Content: &edited})
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	updated, err := f.service.Update(context.Background(), created.ID, "alice", comment.UpdateInput{Content: &edited})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Content)
}

func TestService_Delete_CascadesReplies(t *testing.T) {
	f := newFixture()
	top, err := f.service.Create(context.Background(), "d1", "alice", comment.CreateInput{Content: "Top"})
	require.NoError(t, err)
	reply, err := f.service.Create(context.Background(), "d1", "bob", comment.CreateInput{Content: "Reply", ParentID: &top.ID})
	require.NoError(t, err)

	t.Run("reply_deletes_only_itself", func(t *testing.T) {
		deleted, err := f.service.Delete(context.Background(), reply.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
	})

	t.Run("parent_cascades", func(t *testing.T) {
		r2, err := f.service.Create(context.Background(), "d1", "bob", comment.CreateInput{Content: "R2", ParentID: &top.ID})
		require.NoError(t, err)
		_ = r2

		deleted, err := f.service.Delete(context.Background(), top.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2, deleted)

		tree, err := f.service.Tree(context.Background(), "d1", "alice")
		require.NoError(t, err)
		assert.Empty(t, tree)
	})

	t.Run("only_author_deletes", func(t *testing.T) {
		c, err := f.service.Create(context.Background(), "d1", "alice", comment.CreateInput{Content: "Mine"})
		require.NoError(t, err)
		_, err = f.service.Delete(context.Background(), c.ID, "bob")
		assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
	})
}
