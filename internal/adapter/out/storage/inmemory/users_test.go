package inmemory

import (
	"context"
	"testing"

	"socialfeed/internal/service"

	"github.com/stretchr/testify/require"
)

func TestUserStorage_PostListLifecycle(t *testing.T) {
	t.Parallel()

	st := NewUserStorage()
	ctx := context.Background()

	u, err := st.AddUser(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, st.AddPostToUser(ctx, u.ID, 10))
	require.NoError(t, st.AddPostToUser(ctx, u.ID, 11))
	require.NoError(t, st.AddPostToUser(ctx, u.ID, 12))

	got, err := st.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	// insertion order is creation order
	require.Equal(t, []int64{10, 11, 12}, got.PostIDs)

	require.NoError(t, st.RemovePostFromUser(ctx, u.ID, 11))

	got, err = st.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{10, 12}, got.PostIDs)
	require.NotContains(t, got.PostIDs, int64(11))
}

func TestUserStorage_NotFound(t *testing.T) {
	t.Parallel()

	st := NewUserStorage()
	ctx := context.Background()

	_, err := st.GetUserByID(ctx, 42)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.ErrorIs(t, st.AddPostToUser(ctx, 42, 1), service.ErrNotFound)
	require.ErrorIs(t, st.RemovePostFromUser(ctx, 42, 1), service.ErrNotFound)
}

func TestUserStorage_ReturnedListIsACopy(t *testing.T) {
	t.Parallel()

	st := NewUserStorage()
	ctx := context.Background()

	u, err := st.AddUser(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, st.AddPostToUser(ctx, u.ID, 1))

	got, err := st.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	got.PostIDs[0] = 999

	again, err := st.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, again.PostIDs)
}
