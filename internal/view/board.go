package view

import (
	"context"
	"sync"

	"assetdeck/internal/api"
	"assetdeck/internal/domain"
)

// BoardService is the slice of the board API the board controllers need.
type BoardService interface {
	Posts(ctx context.Context, assetID string, page, size int) (domain.Page[domain.Post], error)
	Post(ctx context.Context, assetID string, postID int64) (*domain.Post, error)
	CreatePost(ctx context.Context, assetID string, input api.PostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, assetID string, postID int64, input api.PostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, assetID string, postID int64) error
	Comments(ctx context.Context, postID int64, page, size int) (domain.Page[domain.Comment], error)
	CreateComment(ctx context.Context, postID int64, input api.CommentInput) (*domain.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID int64, input api.CommentInput) (*domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID int64) error
	Like(ctx context.Context, assetID string, postID int64) error
	Unlike(ctx context.Context, assetID string, postID int64) error
}

// BoardController owns the per-asset discussion list: which asset's board
// is shown and the post pagination cursor.
type BoardController struct {
	board BoardService
	pager *Pager[domain.Post]

	mu      sync.Mutex
	assetID string
}

// NewBoardController creates the controller with the given page size.
func NewBoardController(board BoardService, pageSize int) *BoardController {
	c := &BoardController{board: board}
	c.pager = NewPager(pageSize, func(ctx context.Context, page, size int) (domain.Page[domain.Post], error) {
		return board.Posts(ctx, c.AssetID(), page, size)
	})
	return c
}

// SetAsset switches the board to another asset and loads its first page.
// The page reset happens even when the asset is unchanged.
func (c *BoardController) SetAsset(ctx context.Context, assetID string) error {
	c.mu.Lock()
	c.assetID = assetID
	c.mu.Unlock()
	c.pager.Reset()
	return c.pager.Load(ctx, 0)
}

// Go loads the given page of the current asset's board.
func (c *BoardController) Go(ctx context.Context, page int) error {
	return c.pager.Load(ctx, page)
}

// Refresh re-fetches the current page.
func (c *BoardController) Refresh(ctx context.Context) error {
	return c.pager.Reload(ctx)
}

// Create posts a new entry and re-fetches the current page so the list
// reflects server-side ordering.
func (c *BoardController) Create(ctx context.Context, input api.PostInput) error {
	if _, err := c.board.CreatePost(ctx, c.AssetID(), input); err != nil {
		return err
	}
	return c.pager.Reload(ctx)
}

// Delete removes a post and refreshes, walking back a page if this emptied
// the current one.
func (c *BoardController) Delete(ctx context.Context, postID int64) error {
	if err := c.board.DeletePost(ctx, c.AssetID(), postID); err != nil {
		return err
	}
	return c.pager.AfterDelete(ctx)
}

// AssetID returns the asset whose board is shown.
func (c *BoardController) AssetID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.assetID
}

// Posts returns a copy of the loaded page.
func (c *BoardController) Posts() []domain.Post { return c.pager.Content() }

// State returns the pagination state.
func (c *BoardController) State() PageState { return c.pager.State() }

// Page returns the current page index.
func (c *BoardController) Page() int { return c.pager.Page() }

// TotalPages returns the last known page count.
func (c *BoardController) TotalPages() int { return c.pager.TotalPages() }

// Err returns the error from the last failed fetch.
func (c *BoardController) Err() error { return c.pager.Err() }
