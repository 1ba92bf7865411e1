package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/internal/service"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newPostStorageMock(t *testing.T) (pgxmock.PgxPoolIface, *PostStorage) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewPostStorage(mock, trmpgx.DefaultCtxGetter)
}

func postRows(now time.Time) *pgxmock.Rows {
	return pgxmock.
		NewRows([]string{"id", "title", "content", "image_url", "user_id", "created_at"}).
		AddRow(int64(1), "t1", "c1", "images/a.png", int64(4), now)
}

func TestPostStorage_CreatePost(t *testing.T) {
	now := time.Now()

	mock, st := newPostStorageMock(t)

	mock.ExpectQuery("INSERT INTO posts").
		WithArgs("t1", "c1", "images/a.png", int64(4)).
		WillReturnRows(postRows(now))

	out, err := st.CreatePost(context.Background(), model.Post{
		Title:    "t1",
		Content:  "c1",
		ImageURL: "images/a.png",
		UserID:   4,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), out.ID)
	require.Equal(t, "t1", out.Title)
	require.Equal(t, "images/a.png", out.ImageURL)
	require.Equal(t, int64(4), out.UserID)
	require.WithinDuration(t, now, out.CreatedAt, time.Second)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStorage_GetPostByID(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT .* FROM posts").
					WithArgs(int64(1)).
					WillReturnRows(postRows(now))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT .* FROM posts").
					WithArgs(int64(1)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "storage error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT .* FROM posts").
					WithArgs(int64(1)).
					WillReturnError(errors.New("conn reset"))
			},
			wantErr: errors.New("conn reset"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock, st := newPostStorageMock(t)
			tt.setup(mock)

			got, err := st.GetPostByID(context.Background(), 1)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, service.ErrNotFound) {
					require.ErrorIs(t, err, service.ErrNotFound)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(1), got.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostStorage_ListPosts(t *testing.T) {
	now := time.Now()

	mock, st := newPostStorageMock(t)

	rows := pgxmock.
		NewRows([]string{"id", "title", "content", "image_url", "user_id", "created_at"}).
		AddRow(int64(5), "t5", "c5", "images/e.png", int64(1), now).
		AddRow(int64(4), "t4", "c4", "images/d.png", int64(2), now.Add(-time.Minute))

	mock.ExpectQuery("SELECT .* FROM posts ORDER BY created_at DESC, id DESC").
		WillReturnRows(rows)

	got, err := st.ListPosts(context.Background(), storage.ListPostsParams{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(5), got[0].ID)
	require.Equal(t, int64(4), got[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStorage_CountPosts(t *testing.T) {
	mock, st := newPostStorageMock(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	total, err := st.CountPosts(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), total)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStorage_UpdatePost(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE posts").
					WithArgs("t1", "c1", "images/a.png", int64(1)).
					WillReturnRows(postRows(now))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE posts").
					WithArgs("t1", "c1", "images/a.png", int64(1)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: service.ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock, st := newPostStorageMock(t)
			tt.setup(mock)

			got, err := st.UpdatePost(context.Background(), storage.UpdatePostParams{
				PostID:   1,
				Title:    "t1",
				Content:  "c1",
				ImageURL: "images/a.png",
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(1), got.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostStorage_DeletePost(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("DELETE FROM posts").
					WithArgs(int64(1)).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("DELETE FROM posts").
					WithArgs(int64(1)).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: service.ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock, st := newPostStorageMock(t)
			tt.setup(mock)

			err := st.DeletePost(context.Background(), 1)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
