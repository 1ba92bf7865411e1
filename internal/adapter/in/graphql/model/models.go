package model

import "time"

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	CreatorID string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

type Creator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PostPage struct {
	Posts      []*Post `json:"posts"`
	TotalItems int     `json:"totalItems"`
}

type CreatePostPayload struct {
	Post    *Post    `json:"post"`
	Creator *Creator `json:"creator"`
}

type FeedEvent struct {
	Action  string   `json:"action"`
	Post    *Post    `json:"post,omitempty"`
	Creator *Creator `json:"creator,omitempty"`
	PostID  *string  `json:"postId,omitempty"`
}

type PostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}
