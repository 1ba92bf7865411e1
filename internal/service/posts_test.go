package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/pkg/pagination"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	posts  *MockPostStorage
	users  *MockUserStorage
	bus    *MockFeedBus
	images *MockImageStore
}

func newServiceMocks(t *testing.T) serviceMocks {
	ctrl := gomock.NewController(t)
	return serviceMocks{
		posts:  NewMockPostStorage(ctrl),
		users:  NewMockUserStorage(ctrl),
		bus:    NewMockFeedBus(ctrl),
		images: NewMockImageStore(ctrl),
	}
}

func (m serviceMocks) service() *PostService {
	return NewPostService(m.posts, m.users, m.bus, m.images)
}

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		req     CreatePostRequest
		setup   func(m serviceMocks)
		wantErr error
	}{
		{
			name:    "unauthenticated",
			req:     CreatePostRequest{Title: "A", Content: "B", ImageURL: "images/a.png"},
			setup:   func(_ serviceMocks) {},
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "missing title",
			req:     CreatePostRequest{UserID: 1, Content: "B", ImageURL: "images/a.png"},
			setup:   func(_ serviceMocks) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "missing image",
			req:     CreatePostRequest{UserID: 1, Title: "A", Content: "B"},
			setup:   func(_ serviceMocks) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "storage error",
			req:  CreatePostRequest{UserID: 1, Title: "A", Content: "B", ImageURL: "images/a.png"},
			setup: func(m serviceMocks) {
				m.posts.EXPECT().
					CreatePost(gomock.Any(), gomock.Any()).
					Return(model.Post{}, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
		{
			name: "success",
			req:  CreatePostRequest{UserID: 1, Title: "A", Content: "B", ImageURL: "images/a.png"},
			setup: func(m serviceMocks) {
				created := model.Post{
					ID: 10, Title: "A", Content: "B",
					ImageURL: "images/a.png", UserID: 1, CreatedAt: now,
				}
				m.posts.EXPECT().
					CreatePost(gomock.Any(), model.Post{
						Title: "A", Content: "B", ImageURL: "images/a.png", UserID: 1,
					}).
					Return(created, nil)
				m.users.EXPECT().
					GetUserByID(gomock.Any(), int64(1)).
					Return(model.User{ID: 1, Name: "u1"}, nil)
				m.users.EXPECT().
					AddPostToUser(gomock.Any(), int64(1), int64(10)).
					Return(nil)
				m.bus.EXPECT().
					Publish(gomock.Any(), model.FeedEvent{
						Action:  model.FeedActionCreate,
						Post:    &created,
						Creator: &model.Creator{ID: 1, Name: "u1"},
					}).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newServiceMocks(t)
			tt.setup(m)

			post, creator, err := m.service().CreatePost(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidRequest) || errors.Is(tt.wantErr, ErrUnauthenticated) {
					require.ErrorIs(t, err, tt.wantErr)
				}
				return
			}

			require.NoError(t, err)
			require.Equal(t, int64(10), post.ID)
			require.Equal(t, tt.req.UserID, post.UserID)
			require.Equal(t, model.Creator{ID: 1, Name: "u1"}, creator)
		})
	}
}

func TestPostService_CreatePost_PublishFailureDoesNotFailMutation(t *testing.T) {
	t.Parallel()

	m := newServiceMocks(t)

	created := model.Post{ID: 3, Title: "A", Content: "B", ImageURL: "images/a.png", UserID: 1}
	m.posts.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(created, nil)
	m.users.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(model.User{ID: 1, Name: "u1"}, nil)
	m.users.EXPECT().AddPostToUser(gomock.Any(), int64(1), int64(3)).Return(nil)
	m.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("bus down"))

	_, _, err := m.service().CreatePost(context.Background(), CreatePostRequest{
		UserID: 1, Title: "A", Content: "B", ImageURL: "images/a.png",
	})
	require.NoError(t, err)
}

func TestPostService_UpdatePost(t *testing.T) {
	t.Parallel()

	existing := model.Post{
		ID: 5, Title: "old", Content: "old", ImageURL: "images/old.png", UserID: 1,
	}

	tests := []struct {
		name    string
		req     UpdatePostRequest
		setup   func(m serviceMocks)
		wantErr error
	}{
		{
			name:    "unauthenticated",
			req:     UpdatePostRequest{PostID: 5, Title: "t", Content: "c", ImageURL: "images/old.png"},
			setup:   func(_ serviceMocks) {},
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "missing image path",
			req:     UpdatePostRequest{PostID: 5, UserID: 1, Title: "t", Content: "c"},
			setup:   func(_ serviceMocks) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "post not found",
			req:  UpdatePostRequest{PostID: 5, UserID: 1, Title: "t", Content: "c", ImageURL: "images/old.png"},
			setup: func(m serviceMocks) {
				m.posts.EXPECT().
					GetPostByID(gomock.Any(), int64(5)).
					Return(model.Post{}, ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			// a non-owner gets 403 and nothing is written or broadcast
			name: "forbidden for non-owner",
			req:  UpdatePostRequest{PostID: 5, UserID: 2, Title: "t", Content: "c", ImageURL: "images/old.png"},
			setup: func(m serviceMocks) {
				m.posts.EXPECT().GetPostByID(gomock.Any(), int64(5)).Return(existing, nil)
				m.users.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(model.User{ID: 1, Name: "u1"}, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name: "success keeping image",
			req:  UpdatePostRequest{PostID: 5, UserID: 1, Title: "t", Content: "c", ImageURL: "images/old.png"},
			setup: func(m serviceMocks) {
				m.posts.EXPECT().GetPostByID(gomock.Any(), int64(5)).Return(existing, nil)
				m.users.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(model.User{ID: 1, Name: "u1"}, nil)
				updated := existing
				updated.Title, updated.Content = "t", "c"
				m.posts.EXPECT().
					UpdatePost(gomock.Any(), storage.UpdatePostParams{
						PostID: 5, Title: "t", Content: "c", ImageURL: "images/old.png",
					}).
					Return(updated, nil)
				m.bus.EXPECT().
					Publish(gomock.Any(), model.FeedEvent{
						Action:  model.FeedActionUpdate,
						Post:    &updated,
						Creator: &model.Creator{ID: 1, Name: "u1"},
					}).
					Return(nil)
			},
		},
		{
			name: "success replacing image deletes the old one",
			req:  UpdatePostRequest{PostID: 5, UserID: 1, Title: "t", Content: "c", ImageURL: "images/new.png"},
			setup: func(m serviceMocks) {
				m.posts.EXPECT().GetPostByID(gomock.Any(), int64(5)).Return(existing, nil)
				m.users.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(model.User{ID: 1, Name: "u1"}, nil)
				m.images.EXPECT().Delete(gomock.Any(), "images/old.png").Return(nil)
				updated := existing
				updated.Title, updated.Content, updated.ImageURL = "t", "c", "images/new.png"
				m.posts.EXPECT().
					UpdatePost(gomock.Any(), storage.UpdatePostParams{
						PostID: 5, Title: "t", Content: "c", ImageURL: "images/new.png",
					}).
					Return(updated, nil)
				m.bus.EXPECT().
					Publish(gomock.Any(), model.FeedEvent{
						Action:  model.FeedActionUpdate,
						Post:    &updated,
						Creator: &model.Creator{ID: 1, Name: "u1"},
					}).
					Return(nil)
			},
		},
		{
			// cleanup failure must not change the mutation outcome
			name: "image cleanup failure is swallowed",
			req:  UpdatePostRequest{PostID: 5, UserID: 1, Title: "t", Content: "c", ImageURL: "images/new.png"},
			setup: func(m serviceMocks) {
				m.posts.EXPECT().GetPostByID(gomock.Any(), int64(5)).Return(existing, nil)
				m.users.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(model.User{ID: 1, Name: "u1"}, nil)
				m.images.EXPECT().Delete(gomock.Any(), "images/old.png").Return(errors.New("unlink failed"))
				updated := existing
				updated.Title, updated.Content, updated.ImageURL = "t", "c", "images/new.png"
				m.posts.EXPECT().UpdatePost(gomock.Any(), gomock.Any()).Return(updated, nil)
				m.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newServiceMocks(t)
			tt.setup(m)

			got, err := m.service().UpdatePost(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.req.Title, got.Title)
			// the creator never changes
			require.Equal(t, existing.UserID, got.UserID)
		})
	}
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	existing := model.Post{
		ID: 7, Title: "A", Content: "B", ImageURL: "images/a.png", UserID: 1,
	}

	tests := []struct {
		name    string
		postID  int64
		userID  int64
		setup   func(m serviceMocks)
		wantErr error
	}{
		{
			name:    "unauthenticated",
			postID:  7,
			setup:   func(_ serviceMocks) {},
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "invalid id",
			postID:  0,
			userID:  1,
			setup:   func(_ serviceMocks) {},
			wantErr: ErrInvalidRequest,
		},
		{
			// unknown id yields 404 and no side effects at all
			name:   "post not found",
			postID: 99,
			userID: 1,
			setup: func(m serviceMocks) {
				m.posts.EXPECT().
					GetPostByID(gomock.Any(), int64(99)).
					Return(model.Post{}, ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "forbidden for non-owner",
			postID: 7,
			userID: 2,
			setup: func(m serviceMocks) {
				m.posts.EXPECT().GetPostByID(gomock.Any(), int64(7)).Return(existing, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:   "success",
			postID: 7,
			userID: 1,
			setup: func(m serviceMocks) {
				m.posts.EXPECT().GetPostByID(gomock.Any(), int64(7)).Return(existing, nil)
				m.images.EXPECT().Delete(gomock.Any(), "images/a.png").Return(nil)
				m.posts.EXPECT().DeletePost(gomock.Any(), int64(7)).Return(nil)
				m.users.EXPECT().RemovePostFromUser(gomock.Any(), int64(1), int64(7)).Return(nil)
				m.bus.EXPECT().
					Publish(gomock.Any(), model.FeedEvent{
						Action: model.FeedActionDelete,
						PostID: 7,
					}).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newServiceMocks(t)
			tt.setup(m)

			err := m.service().DeletePost(context.Background(), tt.postID, tt.userID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPostService_GetPosts(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name       string
		req        pagination.PageRequest
		wantParams storage.ListPostsParams
		wantPage   int
	}{
		{
			name:       "first page by default",
			req:        pagination.PageRequest{},
			wantParams: storage.ListPostsParams{Offset: 0, Limit: DefaultPerPage},
			wantPage:   1,
		},
		{
			name:       "non-positive page fails closed to 1",
			req:        pagination.PageRequest{Page: -2},
			wantParams: storage.ListPostsParams{Offset: 0, Limit: DefaultPerPage},
			wantPage:   1,
		},
		{
			name:       "third page offset",
			req:        pagination.PageRequest{Page: 3},
			wantParams: storage.ListPostsParams{Offset: 4, Limit: DefaultPerPage},
			wantPage:   3,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newServiceMocks(t)
			m.posts.EXPECT().CountPosts(gomock.Any()).Return(int64(5), nil)
			m.posts.EXPECT().
				ListPosts(gomock.Any(), tt.wantParams).
				Return([]model.Post{{ID: 1, CreatedAt: now}}, nil)

			page, err := m.service().GetPosts(context.Background(), tt.req)
			require.NoError(t, err)
			require.Equal(t, int64(5), page.TotalItems)
			require.Equal(t, tt.wantPage, page.Page)
			require.Len(t, page.Items, 1)
		})
	}
}

func TestPostService_GetPostByID(t *testing.T) {
	t.Parallel()

	m := newServiceMocks(t)
	svc := m.service()

	_, err := svc.GetPostByID(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidRequest)

	m.posts.EXPECT().
		GetPostByID(gomock.Any(), int64(4)).
		Return(model.Post{ID: 4, Title: "A"}, nil)

	got, err := svc.GetPostByID(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, int64(4), got.ID)
}

func TestPostService_Listen(t *testing.T) {
	t.Parallel()

	svc := NewPostService(nil, nil, nil, nil)
	_, err := svc.Listen(context.Background())
	require.Error(t, err)

	m := newServiceMocks(t)
	ch := make(chan model.FeedEvent)
	m.bus.EXPECT().Subscribe(gomock.Any()).Return((<-chan model.FeedEvent)(ch), nil)

	got, err := m.service().Listen(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
}
