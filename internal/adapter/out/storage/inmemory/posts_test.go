package inmemory

import (
	"context"
	"testing"
	"time"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/internal/service"

	"github.com/stretchr/testify/require"
)

func TestPostStorage_CreateAndGetByID(t *testing.T) {
	t.Parallel()

	st := NewPostStorage()

	tests := []struct {
		name   string
		input  model.Post
		wantID int64
	}{
		{
			name:   "first post",
			input:  model.Post{UserID: 1, Title: "t1", Content: "b1", ImageURL: "images/1.png"},
			wantID: 1,
		},
		{
			name:   "second post",
			input:  model.Post{UserID: 2, Title: "t2", Content: "b2", ImageURL: "images/2.png"},
			wantID: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out, err := st.CreatePost(context.Background(), tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.wantID, out.ID)
			require.Equal(t, tt.input.UserID, out.UserID)
			require.Equal(t, tt.input.Title, out.Title)
			require.Equal(t, tt.input.ImageURL, out.ImageURL)
			require.WithinDuration(t, time.Now(), out.CreatedAt, time.Second)

			got, err := st.GetPostByID(context.Background(), tt.wantID)
			require.NoError(t, err)
			require.Equal(t, out, got)
		})
	}
}

func TestPostStorage_GetPostByID_NotFound(t *testing.T) {
	t.Parallel()

	st := NewPostStorage()

	_, err := st.GetPostByID(context.Background(), 10)
	require.ErrorIs(t, err, service.ErrNotFound)
}

// The original system ordered its feed on a column that was never
// populated; here the feed is deliberately newest-first.
func TestPostStorage_ListPosts_NewestFirst(t *testing.T) {
	t.Parallel()

	st := NewPostStorage()
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := st.CreatePost(context.Background(), model.Post{
			UserID: 1, Title: "t", Content: "b", ImageURL: "images/x.png",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	got, err := st.ListPosts(context.Background(), storage.ListPostsParams{Limit: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []int64{5, 4, 3}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

// Pages of size n concatenated over 1..ceil(total/n) must cover every
// post exactly once.
func TestPostStorage_ListPosts_PagesCoverAllPostsOnce(t *testing.T) {
	t.Parallel()

	st := NewPostStorage()
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	const total, perPage = 5, 2
	for i := 0; i < total; i++ {
		_, err := st.CreatePost(context.Background(), model.Post{
			UserID: 1, Title: "t", Content: "b", ImageURL: "images/x.png",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	seen := make(map[int64]int)
	for page := 1; page <= 3; page++ {
		items, err := st.ListPosts(context.Background(), storage.ListPostsParams{
			Offset: (page - 1) * perPage,
			Limit:  perPage,
		})
		require.NoError(t, err)
		require.LessOrEqual(t, len(items), perPage)
		for _, p := range items {
			seen[p.ID]++
		}
	}

	require.Len(t, seen, total)
	for id, n := range seen {
		require.Equalf(t, 1, n, "post %d appeared %d times", id, n)
	}
}

func TestPostStorage_UpdatePost(t *testing.T) {
	t.Parallel()

	st := NewPostStorage()

	_, err := st.UpdatePost(context.Background(), storage.UpdatePostParams{PostID: 1})
	require.ErrorIs(t, err, service.ErrNotFound)

	created, err := st.CreatePost(context.Background(), model.Post{
		UserID: 1, Title: "t", Content: "b", ImageURL: "images/a.png",
	})
	require.NoError(t, err)

	updated, err := st.UpdatePost(context.Background(), storage.UpdatePostParams{
		PostID: created.ID, Title: "t2", Content: "b2", ImageURL: "images/b.png",
	})
	require.NoError(t, err)
	require.Equal(t, "t2", updated.Title)
	require.Equal(t, "images/b.png", updated.ImageURL)
	// creator untouched by updates
	require.Equal(t, created.UserID, updated.UserID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestPostStorage_DeletePost(t *testing.T) {
	t.Parallel()

	st := NewPostStorage()

	require.ErrorIs(t, st.DeletePost(context.Background(), 1), service.ErrNotFound)

	created, err := st.CreatePost(context.Background(), model.Post{
		UserID: 1, Title: "t", Content: "b", ImageURL: "images/a.png",
	})
	require.NoError(t, err)

	require.NoError(t, st.DeletePost(context.Background(), created.ID))
	_, err = st.GetPostByID(context.Background(), created.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	n, err := st.CountPosts(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}
