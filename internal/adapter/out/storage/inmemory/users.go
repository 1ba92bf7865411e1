package inmemory

import (
	"context"
	"slices"
	"sync"

	"socialfeed/internal/model"
	"socialfeed/internal/service"
)

type UserStorage struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]model.User
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		nextID: 1,
		byID:   make(map[int64]model.User),
	}
}

// AddUser seeds a user; the service never creates users itself.
func (s *UserStorage) AddUser(_ context.Context, name string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.User{ID: s.nextID, Name: name}
	s.nextID++
	s.byID[u.ID] = u
	return u, nil
}

func (s *UserStorage) GetUserByID(_ context.Context, userID int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[userID]
	if !ok {
		return model.User{}, service.ErrNotFound
	}
	u.PostIDs = slices.Clone(u.PostIDs)
	return u, nil
}

func (s *UserStorage) AddPostToUser(_ context.Context, userID, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return service.ErrNotFound
	}
	u.PostIDs = append(u.PostIDs, postID)
	s.byID[userID] = u
	return nil
}

func (s *UserStorage) RemovePostFromUser(_ context.Context, userID, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return service.ErrNotFound
	}
	u.PostIDs = slices.DeleteFunc(slices.Clone(u.PostIDs), func(id int64) bool {
		return id == postID
	})
	s.byID[userID] = u
	return nil
}
