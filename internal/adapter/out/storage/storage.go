package storage

type ListPostsParams struct {
	Offset int
	Limit  int
}

type UpdatePostParams struct {
	PostID   int64
	Title    string
	Content  string
	ImageURL string
}
