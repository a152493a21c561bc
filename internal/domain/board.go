package domain

import "time"

// Post is a discussion-board entry for one asset. All counters are owned by
// the board backend; the client only reflects what the server returned and
// re-fetches after mutations instead of patching counts locally.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	ViewCount int64     `json:"viewCount"`
	LikeCount int64     `json:"likeCount"`

	// Liked is filled client-side from the like-status endpoint, not part of
	// the post payload itself.
	Liked bool `json:"isLiked"`
}

// Comment is a single comment attached to a post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is the authenticated user's profile as served by /user/me.
type User struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}
