package tableinfo

const (
	PostsTableName = "posts"

	PostIDColumn        = "id"
	PostTitleColumn     = "title"
	PostContentColumn   = "content"
	PostImageURLColumn  = "image_url"
	PostUserIDColumn    = "user_id"
	PostCreatedAtColumn = "created_at"
)

const (
	UsersTableName = "users"

	UserIDColumn   = "id"
	UserNameColumn = "name"
)

const (
	UserPostsTableName = "user_posts"

	UserPostUserIDColumn   = "user_id"
	UserPostPostIDColumn   = "post_id"
	UserPostPositionColumn = "position"
)
