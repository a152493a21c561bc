package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosts_DecodesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets/005930/posts", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("size"))
		w.Write([]byte(`{
			"content": [{"id": 7, "title": "실적 전망", "authorId": "user@example.com", "likeCount": 3}],
			"number": 2,
			"totalPages": 5
		}`))
	}))
	defer server.Close()

	client := NewBoardClient(server.URL, time.Second, nil)

	page, err := client.Posts(context.Background(), "005930", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.PageIndex)
	assert.Equal(t, 5, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(7), page.Content[0].ID)
	assert.Equal(t, int64(3), page.Content[0].LikeCount)
}

func TestPost_AnnotatesLikeStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assets/005930/posts/7":
			json.NewEncoder(w).Encode(map[string]any{"id": 7, "title": "제목"})
		case "/assets/005930/posts/7/like":
			w.Write([]byte(`true`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewBoardClient(server.URL, time.Second, nil)

	post, err := client.Post(context.Background(), "005930", 7)
	require.NoError(t, err)
	assert.True(t, post.Liked)
}

func TestPost_LikeStatusFailureDegradesToFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assets/005930/posts/7":
			json.NewEncoder(w).Encode(map[string]any{"id": 7})
		default:
			http.Error(w, "nope", http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	client := NewBoardClient(server.URL, time.Second, nil)

	post, err := client.Post(context.Background(), "005930", 7)
	require.NoError(t, err, "a failed like-status read must not fail the post fetch")
	assert.False(t, post.Liked)
}

func TestComments_RequestsNewestFirst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/7/comments", r.URL.Path)
		assert.Equal(t, "createdAt,desc", r.URL.Query().Get("sort"))
		w.Write([]byte(`{"content": [], "number": 0, "totalPages": 0}`))
	}))
	defer server.Close()

	client := NewBoardClient(server.URL, time.Second, nil)
	_, err := client.Comments(context.Background(), 7, 0, 10)
	assert.NoError(t, err)
}

func TestLikeUnlike_UseSamePathDifferentMethods(t *testing.T) {
	var gotMethods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets/005930/posts/7/like", r.URL.Path)
		gotMethods = append(gotMethods, r.Method)
	}))
	defer server.Close()

	client := NewBoardClient(server.URL, time.Second, nil)
	require.NoError(t, client.Like(context.Background(), "005930", 7))
	require.NoError(t, client.Unlike(context.Background(), "005930", 7))

	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, gotMethods)
}
