package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"assetdeck/internal/domain"
)

// PostInput is the create/update payload for posts.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CommentInput is the create/update payload for comments.
type CommentInput struct {
	Content string `json:"content"`
}

// BoardClient talks to the discussion-board service: posts, comments, likes.
type BoardClient struct {
	*client
}

// NewBoardClient creates a board-service client.
func NewBoardClient(baseURL string, timeout time.Duration, creds CredentialSource) *BoardClient {
	return &BoardClient{client: newClient(baseURL, timeout, creds, HeaderAuthorization)}
}

func pageQuery(page, size int) url.Values {
	return url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
}

// Posts fetches one page of an asset's board.
func (c *BoardClient) Posts(ctx context.Context, assetID string, page, size int) (domain.Page[domain.Post], error) {
	var out domain.Page[domain.Post]
	path := fmt.Sprintf("/assets/%s/posts", assetID)
	err := c.do(ctx, http.MethodGet, path, pageQuery(page, size), nil, &out)
	return out, err
}

// Post fetches a single post and annotates it with the current user's like
// status. A failing like-status read degrades to "not liked" rather than
// failing the whole fetch, matching the dashboard's behavior.
func (c *BoardClient) Post(ctx context.Context, assetID string, postID int64) (*domain.Post, error) {
	var out domain.Post
	path := fmt.Sprintf("/assets/%s/posts/%d", assetID, postID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}

	liked, err := c.LikeStatus(ctx, assetID, postID)
	if err != nil {
		slog.Warn("Like status fetch failed", "postID", postID, "err", err)
		liked = false
	}
	out.Liked = liked
	return &out, nil
}

// CreatePost creates a post on an asset's board.
func (c *BoardClient) CreatePost(ctx context.Context, assetID string, input PostInput) (*domain.Post, error) {
	var out domain.Post
	path := fmt.Sprintf("/assets/%s/posts", assetID)
	if err := c.do(ctx, http.MethodPost, path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost replaces a post's title and content.
func (c *BoardClient) UpdatePost(ctx context.Context, assetID string, postID int64, input PostInput) (*domain.Post, error) {
	var out domain.Post
	path := fmt.Sprintf("/assets/%s/posts/%d", assetID, postID)
	if err := c.do(ctx, http.MethodPut, path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost removes a post.
func (c *BoardClient) DeletePost(ctx context.Context, assetID string, postID int64) error {
	path := fmt.Sprintf("/assets/%s/posts/%d", assetID, postID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Comments fetches one page of a post's comments, newest first.
func (c *BoardClient) Comments(ctx context.Context, postID int64, page, size int) (domain.Page[domain.Comment], error) {
	var out domain.Page[domain.Comment]
	q := pageQuery(page, size)
	q.Set("sort", "createdAt,desc")
	path := fmt.Sprintf("/posts/%d/comments", postID)
	err := c.do(ctx, http.MethodGet, path, q, nil, &out)
	return out, err
}

// CreateComment adds a comment to a post.
func (c *BoardClient) CreateComment(ctx context.Context, postID int64, input CommentInput) (*domain.Comment, error) {
	var out domain.Comment
	path := fmt.Sprintf("/posts/%d/comments", postID)
	if err := c.do(ctx, http.MethodPost, path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment replaces a comment's content.
func (c *BoardClient) UpdateComment(ctx context.Context, postID, commentID int64, input CommentInput) (*domain.Comment, error) {
	var out domain.Comment
	path := fmt.Sprintf("/posts/%d/comments/%d", postID, commentID)
	if err := c.do(ctx, http.MethodPut, path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes a comment.
func (c *BoardClient) DeleteComment(ctx context.Context, postID, commentID int64) error {
	path := fmt.Sprintf("/posts/%d/comments/%d", postID, commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Like registers a like for the current user. Counters are not patched
// locally: callers re-fetch the post afterwards to avoid drift.
func (c *BoardClient) Like(ctx context.Context, assetID string, postID int64) error {
	path := fmt.Sprintf("/assets/%s/posts/%d/like", assetID, postID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

// Unlike removes the current user's like.
func (c *BoardClient) Unlike(ctx context.Context, assetID string, postID int64) error {
	path := fmt.Sprintf("/assets/%s/posts/%d/like", assetID, postID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// LikeStatus reports whether the current user likes the post.
func (c *BoardClient) LikeStatus(ctx context.Context, assetID string, postID int64) (bool, error) {
	var out bool
	path := fmt.Sprintf("/assets/%s/posts/%d/like", assetID, postID)
	err := c.do(ctx, http.MethodGet, path, nil, nil, &out)
	return out, err
}

// CurrentUser fetches the signed-in user's profile.
func (c *BoardClient) CurrentUser(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
