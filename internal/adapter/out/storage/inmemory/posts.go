package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/internal/service"
)

type PostStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.Post
}

func NewPostStorage() *PostStorage {
	return &PostStorage{
		nextID: 1,
		byID:   make(map[int64]model.Post),
	}
}

func (s *PostStorage) CreatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = s.nextID
	s.nextID++
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	s.byID[in.ID] = in
	return in, nil
}

func (s *PostStorage) GetPostByID(_ context.Context, postID int64) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if post, ok := s.byID[postID]; ok {
		return post, nil
	}
	return model.Post{}, service.ErrNotFound
}

// ListPosts returns posts newest first (created_at, then id as the
// tie-break), offset into the ordered set.
func (s *PostStorage) ListPosts(_ context.Context, params storage.ListPostsParams) ([]model.Post, error) {
	s.mu.RLock()
	all := make([]model.Post, 0, len(s.byID))
	for _, p := range s.byID {
		all = append(all, p)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if params.Offset >= len(all) {
		return nil, nil
	}
	all = all[params.Offset:]
	if params.Limit > 0 && len(all) > params.Limit {
		all = all[:params.Limit]
	}
	return all, nil
}

func (s *PostStorage) CountPosts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.byID)), nil
}

func (s *PostStorage) UpdatePost(_ context.Context, params storage.UpdatePostParams) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[params.PostID]
	if !ok {
		return model.Post{}, service.ErrNotFound
	}
	p.Title = params.Title
	p.Content = params.Content
	p.ImageURL = params.ImageURL
	s.byID[params.PostID] = p
	return p, nil
}

func (s *PostStorage) DeletePost(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[postID]; !ok {
		return service.ErrNotFound
	}
	delete(s.byID, postID)
	return nil
}
