package model

type FeedAction string

const (
	FeedActionCreate FeedAction = "create"
	FeedActionUpdate FeedAction = "update"
	FeedActionDelete FeedAction = "delete"
)

// FeedEvent describes one committed post mutation. Create and update
// carry the full post snapshot with its creator; delete carries only
// the post id.
type FeedEvent struct {
	Action  FeedAction
	Post    *Post
	Creator *Creator
	PostID  int64
}
