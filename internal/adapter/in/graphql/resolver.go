package graphql

import (
	"context"

	"socialfeed/internal/model"
	"socialfeed/internal/service"
	"socialfeed/pkg/pagination"
)

//go:generate go run github.com/99designs/gqlgen generate

type PostService interface {
	CreatePost(ctx context.Context, req service.CreatePostRequest) (model.Post, model.Creator, error)
	UpdatePost(ctx context.Context, req service.UpdatePostRequest) (model.Post, error)
	DeletePost(ctx context.Context, postID, userID int64) error
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	GetPosts(ctx context.Context, in pagination.PageRequest) (pagination.Page[model.Post], error)
	GetCreator(ctx context.Context, userID int64) (model.Creator, error)
	Listen(ctx context.Context) (<-chan model.FeedEvent, error)
}

type Resolver struct {
	postService PostService
}

func NewResolver(postService PostService) *Resolver {
	return &Resolver{postService: postService}
}
