package service

import (
	"socialfeed/internal/adapter/out/storage"
	"socialfeed/pkg/pagination"
)

type CreatePostRequest struct {
	UserID   int64  `validate:"required,gt=0"`
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	ImageURL string `validate:"required"`
}

type UpdatePostRequest struct {
	PostID  int64  `validate:"required,gt=0"`
	UserID  int64  `validate:"required,gt=0"`
	Title   string `validate:"required"`
	Content string `validate:"required"`
	// ImageURL is either the freshly uploaded path or the previous
	// one resent by the client. A post never exists without an image,
	// so an empty value fails validation.
	ImageURL string `validate:"required"`
}

func toListPostsParams(in pagination.PageRequest) storage.ListPostsParams {
	in = in.Normalize(DefaultPerPage, MaxPerPage)
	return storage.ListPostsParams{
		Offset: in.Offset(),
		Limit:  in.PerPage,
	}
}
