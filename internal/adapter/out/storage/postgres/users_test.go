package postgres

import (
	"context"
	"testing"

	"socialfeed/internal/service"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newUserStorageMock(t *testing.T) (pgxmock.PgxPoolIface, *UserStorage) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewUserStorage(mock, trmpgx.DefaultCtxGetter)
}

func TestUserStorage_GetUserByID(t *testing.T) {
	mock, st := newUserStorageMock(t)

	mock.ExpectQuery("SELECT id, name FROM users").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "u1"))
	mock.ExpectQuery("SELECT post_id FROM user_posts").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"post_id"}).
			AddRow(int64(10)).
			AddRow(int64(12)))

	u, err := st.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "u1", u.Name)
	require.Equal(t, []int64{10, 12}, u.PostIDs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStorage_GetUserByID_NotFound(t *testing.T) {
	mock, st := newUserStorageMock(t)

	mock.ExpectQuery("SELECT id, name FROM users").
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := st.GetUserByID(context.Background(), 9)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestUserStorage_AddAndRemovePost(t *testing.T) {
	mock, st := newUserStorageMock(t)

	mock.ExpectExec("INSERT INTO user_posts").
		WithArgs(int64(1), int64(10)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("DELETE FROM user_posts").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, st.AddPostToUser(context.Background(), 1, 10))
	require.NoError(t, st.RemovePostFromUser(context.Background(), 1, 10))

	require.NoError(t, mock.ExpectationsWereMet())
}
