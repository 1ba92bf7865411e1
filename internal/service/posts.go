package service

import (
	"context"
	"fmt"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/pkg/logger"
	"socialfeed/pkg/pagination"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPerPage = 2
	MaxPerPage     = 100
)

//go:generate mockgen -source=posts.go -destination=./posts_mock.go -package=service
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	ListPosts(ctx context.Context, params storage.ListPostsParams) ([]model.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	UpdatePost(ctx context.Context, params storage.UpdatePostParams) (model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

type UserStorage interface {
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
	AddPostToUser(ctx context.Context, userID, postID int64) error
	RemovePostFromUser(ctx context.Context, userID, postID int64) error
}

type FeedBus interface {
	Subscribe(ctx context.Context) (<-chan model.FeedEvent, error)
	Publish(ctx context.Context, ev model.FeedEvent) error
}

type ImageStore interface {
	Delete(ctx context.Context, path string) error
}

type PostService struct {
	postStorage PostStorage
	userStorage UserStorage
	feedBus     FeedBus
	images      ImageStore
}

func NewPostService(postStorage PostStorage, userStorage UserStorage, feedBus FeedBus, images ImageStore) *PostService {
	return &PostService{
		postStorage: postStorage,
		userStorage: userStorage,
		feedBus:     feedBus,
		images:      images,
	}
}

// CreatePost stores a new post for the authenticated user, appends it
// to the user's post list and broadcasts a create event. The two writes
// are sequential, not atomic.
func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (model.Post, model.Creator, error) {
	if req.UserID <= 0 {
		return model.Post{}, model.Creator{}, ErrUnauthenticated
	}
	if err := validator.New().Struct(req); err != nil {
		return model.Post{}, model.Creator{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	post, err := s.postStorage.CreatePost(ctx, model.Post{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		UserID:   req.UserID,
	})
	if err != nil {
		return model.Post{}, model.Creator{}, err
	}

	user, err := s.userStorage.GetUserByID(ctx, req.UserID)
	if err != nil {
		return model.Post{}, model.Creator{}, err
	}
	if err := s.userStorage.AddPostToUser(ctx, user.ID, post.ID); err != nil {
		return model.Post{}, model.Creator{}, err
	}

	creator := model.Creator{ID: user.ID, Name: user.Name}
	s.publish(ctx, model.FeedEvent{
		Action:  model.FeedActionCreate,
		Post:    &post,
		Creator: &creator,
	})
	return post, creator, nil
}

// UpdatePost rewrites title, content and image of an owned post and
// broadcasts an update event. The creator never changes. A superseded
// image is removed best-effort before the write.
func (s *PostService) UpdatePost(ctx context.Context, req UpdatePostRequest) (model.Post, error) {
	if req.UserID <= 0 {
		return model.Post{}, ErrUnauthenticated
	}
	if err := validator.New().Struct(req); err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	post, err := s.postStorage.GetPostByID(ctx, req.PostID)
	if err != nil {
		return model.Post{}, err
	}
	user, err := s.userStorage.GetUserByID(ctx, post.UserID)
	if err != nil {
		return model.Post{}, err
	}
	if post.UserID != req.UserID {
		return model.Post{}, fmt.Errorf("%w: not the post owner", ErrForbidden)
	}

	if req.ImageURL != post.ImageURL {
		s.clearImage(ctx, post.ImageURL)
	}

	updated, err := s.postStorage.UpdatePost(ctx, storage.UpdatePostParams{
		PostID:   req.PostID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return model.Post{}, err
	}

	creator := model.Creator{ID: user.ID, Name: user.Name}
	s.publish(ctx, model.FeedEvent{
		Action:  model.FeedActionUpdate,
		Post:    &updated,
		Creator: &creator,
	})
	return updated, nil
}

// DeletePost removes an owned post, its stored image (best-effort) and
// the owner-list entry, then broadcasts a delete event carrying the id.
func (s *PostService) DeletePost(ctx context.Context, postID, userID int64) error {
	if userID <= 0 {
		return ErrUnauthenticated
	}
	if postID <= 0 {
		return fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}

	post, err := s.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return fmt.Errorf("%w: not the post owner", ErrForbidden)
	}

	s.clearImage(ctx, post.ImageURL)

	if err := s.postStorage.DeletePost(ctx, postID); err != nil {
		return err
	}
	if err := s.userStorage.RemovePostFromUser(ctx, userID, postID); err != nil {
		return err
	}

	s.publish(ctx, model.FeedEvent{
		Action: model.FeedActionDelete,
		PostID: postID,
	})
	return nil
}

func (s *PostService) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	if postID <= 0 {
		return model.Post{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	return s.postStorage.GetPostByID(ctx, postID)
}

func (s *PostService) GetPosts(ctx context.Context, in pagination.PageRequest) (pagination.Page[model.Post], error) {
	var page pagination.Page[model.Post]

	in = in.Normalize(DefaultPerPage, MaxPerPage)

	total, err := s.postStorage.CountPosts(ctx)
	if err != nil {
		return page, err
	}

	items, err := s.postStorage.ListPosts(ctx, toListPostsParams(in))
	if err != nil {
		return page, err
	}

	page.Items = items
	page.TotalItems = total
	page.Page = in.Page
	page.PerPage = in.PerPage
	return page, nil
}

// GetCreator resolves the owner snapshot for a post.
func (s *PostService) GetCreator(ctx context.Context, userID int64) (model.Creator, error) {
	if userID <= 0 {
		return model.Creator{}, fmt.Errorf("userID must be > 0: %w", ErrInvalidRequest)
	}
	user, err := s.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return model.Creator{}, err
	}
	return model.Creator{ID: user.ID, Name: user.Name}, nil
}

func (s *PostService) Listen(ctx context.Context) (<-chan model.FeedEvent, error) {
	if s.feedBus == nil {
		return nil, fmt.Errorf("no bus configured")
	}
	return s.feedBus.Subscribe(ctx)
}

// publish is fire-and-forget: delivery failure never changes the
// outcome of the mutation that triggered it, and a missing bus is a
// no-op.
func (s *PostService) publish(ctx context.Context, ev model.FeedEvent) {
	if s.feedBus == nil {
		return
	}
	if err := s.feedBus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("feed publish failed", "action", ev.Action, "error", err)
	}
}

// clearImage removes a stored image best-effort; failures are logged
// and never surface to the mutation.
func (s *PostService) clearImage(ctx context.Context, path string) {
	if s.images == nil || path == "" {
		return
	}
	if err := s.images.Delete(ctx, path); err != nil {
		logger.FromContext(ctx).Warn("image cleanup failed", "path", path, "error", err)
	}
}
