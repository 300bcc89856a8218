package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostEnv(t *testing.T) (*gorm.DB, *fakePostRepo, *PostHandler) {
	t.Helper()
	db := newTestDB(t)
	posts := newFakePostRepo()
	h := NewPostHandler(
		posts,
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresCommentRepository(db),
	)
	return db, posts, h
}

func TestCreatePost(t *testing.T) {
	db, _, h := newPostEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")

	c, rec := newRequest(e, http.MethodPost, "/api/v1/posts", `{"title":"Hello","content":"first post"}`)
	loginAs(c, alice)
	require.NoError(t, h.CreatePost(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, alice.ID, post.AuthorID)
	assert.Equal(t, "Hello", post.Title)
	assert.False(t, post.ID.IsZero())
}

func TestCreatePostValidatesPayload(t *testing.T) {
	db, _, h := newPostEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")

	c, _ := newRequest(e, http.MethodPost, "/api/v1/posts", `{"content":"missing title"}`)
	loginAs(c, alice)
	requireHTTPError(t, h.CreatePost(c), http.StatusBadRequest)
}

func TestGetPostEnrichesAuthor(t *testing.T) {
	db, posts, h := newPostEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")
	post := seedPost(t, posts, alice.ID, "hello", time.Now())

	c, rec := newRequest(e, http.MethodGet, "/api/v1/posts/"+post.ID.Hex(), "")
	c.SetParamNames("id")
	c.SetParamValues(post.ID.Hex())
	require.NoError(t, h.GetPost(c))

	var enriched EnrichedPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enriched))
	assert.Equal(t, "alice", enriched.Author.Username)

	c, _ = newRequest(e, http.MethodGet, "/api/v1/posts/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("64f1b2c3d4e5f6a7b8c9d0ff")
	requireHTTPError(t, h.GetPost(c), http.StatusNotFound)
}

func TestListPostsSearchAndOrdering(t *testing.T) {
	db, posts, h := newPostEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, posts, alice.ID, "Go concurrency", base)
	seedPost(t, posts, bob.ID, "Cooking rice", base.Add(time.Hour))

	list := func(target string) feedResponse {
		c, rec := newRequest(e, http.MethodGet, target, "")
		require.NoError(t, h.ListPosts(c))
		var resp feedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	resp := list("/api/v1/posts")
	require.Len(t, resp.Data.Posts, 2)
	assert.Equal(t, "Cooking rice", resp.Data.Posts[0].Title)

	resp = list("/api/v1/posts?ordering=created_at")
	assert.Equal(t, "Go concurrency", resp.Data.Posts[0].Title)

	resp = list("/api/v1/posts?search=concurrency")
	require.Len(t, resp.Data.Posts, 1)
	assert.Equal(t, "Go concurrency", resp.Data.Posts[0].Title)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	db, posts, h := newPostEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, posts, alice.ID, "original", time.Now())

	update := func(user *models.User, id string) error {
		c, _ := newRequest(e, http.MethodPut, "/api/v1/posts/"+id, `{"title":"changed"}`)
		c.SetParamNames("id")
		c.SetParamValues(id)
		loginAs(c, user)
		return h.UpdatePost(c)
	}

	requireHTTPError(t, update(bob, post.ID.Hex()), http.StatusForbidden)
	require.NoError(t, update(alice, post.ID.Hex()))

	stored, err := posts.GetPostByID(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "changed", stored.Title)
}

func TestDeletePostCascades(t *testing.T) {
	db, posts, h := newPostEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, posts, alice.ID, "doomed", time.Now())
	postID := post.ID.Hex()

	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	require.NoError(t, likeRepo.CreateLike(&models.Like{PostID: postID, UserID: bob.ID}))
	require.NoError(t, commentRepo.CreateComment(&models.Comment{PostID: postID, UserID: bob.ID, Content: "soon gone"}))

	del := func(user *models.User) error {
		c, _ := newRequest(e, http.MethodDelete, "/api/v1/posts/"+postID, "")
		c.SetParamNames("id")
		c.SetParamValues(postID)
		loginAs(c, user)
		return h.DeletePost(c)
	}

	requireHTTPError(t, del(bob), http.StatusForbidden)
	require.NoError(t, del(alice))

	_, err := posts.GetPostByID(context.Background(), postID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	count, err := likeRepo.GetLikesCountByPostID(postID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	comments, err := commentRepo.GetCommentsByPostID(postID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestGetMyPosts(t *testing.T) {
	db, posts, h := newPostEnv(t)
	e := newTestEcho()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedPost(t, posts, alice.ID, "mine", time.Now())
	seedPost(t, posts, bob.ID, "not mine", time.Now())

	c, rec := newRequest(e, http.MethodGet, "/api/v1/posts/mine", "")
	loginAs(c, alice)
	require.NoError(t, h.GetMyPosts(c))

	var resp feedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Posts, 1)
	assert.Equal(t, "mine", resp.Data.Posts[0].Title)
}
