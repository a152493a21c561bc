package view

import (
	"context"
	"errors"
	"sync"

	"assetdeck/internal/api"
	"assetdeck/internal/domain"
)

// ErrNoPost is returned by post operations before a post has been opened.
var ErrNoPost = errors.New("view: no post open")

// PostController owns the post-detail screen: the open post, its comment
// pagination cursor, and the like toggle. Mutations never patch local
// state; they re-fetch, so the screen always shows what the server holds.
type PostController struct {
	board    BoardService
	comments *Pager[domain.Comment]

	mu      sync.Mutex
	assetID string
	postID  int64
	post    *domain.Post
	lastErr error
}

// NewPostController creates the controller with the given comment page size.
func NewPostController(board BoardService, pageSize int) *PostController {
	c := &PostController{board: board}
	c.comments = NewPager(pageSize, func(ctx context.Context, page, size int) (domain.Page[domain.Comment], error) {
		return board.Comments(ctx, c.PostID(), page, size)
	})
	return c
}

// Open loads a post and the first page of its comments.
func (c *PostController) Open(ctx context.Context, assetID string, postID int64) error {
	c.mu.Lock()
	c.assetID = assetID
	c.postID = postID
	c.post = nil
	c.mu.Unlock()

	c.comments.Reset()
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	return c.comments.Load(ctx, 0)
}

// Refresh re-fetches the open post.
func (c *PostController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	assetID, postID := c.assetID, c.postID
	c.mu.Unlock()

	post, err := c.board.Post(ctx, assetID, postID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.post = post
	c.lastErr = nil
	return nil
}

// ToggleLike flips the like state on the server, then re-fetches the post
// so the count and flag come from the server rather than a local guess.
func (c *PostController) ToggleLike(ctx context.Context) error {
	c.mu.Lock()
	post := c.post
	assetID, postID := c.assetID, c.postID
	c.mu.Unlock()
	if post == nil {
		return ErrNoPost
	}

	var err error
	if post.Liked {
		err = c.board.Unlike(ctx, assetID, postID)
	} else {
		err = c.board.Like(ctx, assetID, postID)
	}
	if err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Edit updates the open post and re-fetches it.
func (c *PostController) Edit(ctx context.Context, input api.PostInput) error {
	c.mu.Lock()
	assetID, postID := c.assetID, c.postID
	c.mu.Unlock()
	if _, err := c.board.UpdatePost(ctx, assetID, postID, input); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Delete removes the open post and clears the screen state.
func (c *PostController) Delete(ctx context.Context) error {
	c.mu.Lock()
	assetID, postID := c.assetID, c.postID
	c.mu.Unlock()
	if err := c.board.DeletePost(ctx, assetID, postID); err != nil {
		return err
	}
	c.mu.Lock()
	c.post = nil
	c.mu.Unlock()
	c.comments.Reset()
	return nil
}

// AddComment posts a comment and re-fetches the current comment page.
func (c *PostController) AddComment(ctx context.Context, content string) error {
	if _, err := c.board.CreateComment(ctx, c.PostID(), api.CommentInput{Content: content}); err != nil {
		return err
	}
	return c.comments.Reload(ctx)
}

// EditComment updates a comment and re-fetches the current comment page.
func (c *PostController) EditComment(ctx context.Context, commentID int64, content string) error {
	if _, err := c.board.UpdateComment(ctx, c.PostID(), commentID, api.CommentInput{Content: content}); err != nil {
		return err
	}
	return c.comments.Reload(ctx)
}

// RemoveComment deletes a comment and refreshes, walking back a page if
// this emptied the current one.
func (c *PostController) RemoveComment(ctx context.Context, commentID int64) error {
	if err := c.board.DeleteComment(ctx, c.PostID(), commentID); err != nil {
		return err
	}
	return c.comments.AfterDelete(ctx)
}

// GoComments loads the given comment page.
func (c *PostController) GoComments(ctx context.Context, page int) error {
	return c.comments.Load(ctx, page)
}

// PostID returns the open post's id.
func (c *PostController) PostID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.postID
}

// Post returns a copy of the open post, nil when none is open.
func (c *PostController) Post() *domain.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.post == nil {
		return nil
	}
	post := *c.post
	return &post
}

// Comments returns a copy of the loaded comment page.
func (c *PostController) Comments() []domain.Comment { return c.comments.Content() }

// CommentState returns the comment pagination state.
func (c *PostController) CommentState() PageState { return c.comments.State() }

// CommentPage returns the current comment page index.
func (c *PostController) CommentPage() int { return c.comments.Page() }

// Err returns the error from the last failed post fetch.
func (c *PostController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
