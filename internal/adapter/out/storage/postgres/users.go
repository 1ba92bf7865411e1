package postgres

import (
	"context"
	"errors"
	"fmt"

	"socialfeed/internal/model"
	"socialfeed/internal/service"
	"socialfeed/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

type UserStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewUserStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *UserStorage {
	return &UserStorage{
		db:     db,
		getter: getter,
	}
}

// GetUserByID loads the user row and the owned-post list in creation
// order (user_posts.position is append-only).
func (s *UserStorage) GetUserByID(ctx context.Context, userID int64) (model.User, error) {
	query, args, err := sq.
		Select(tableinfo.UserIDColumn, tableinfo.UserNameColumn).
		From(tableinfo.UsersTableName).
		Where(sq.Eq{tableinfo.UserIDColumn: userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	var u model.User
	if err := tr.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, service.ErrNotFound
		}
		return model.User{}, fmt.Errorf("exec select user by id: %w", err)
	}

	query, args, err = sq.
		Select(tableinfo.UserPostPostIDColumn).
		From(tableinfo.UserPostsTableName).
		Where(sq.Eq{tableinfo.UserPostUserIDColumn: userID}).
		OrderBy(tableinfo.UserPostPositionColumn + " ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return model.User{}, fmt.Errorf("exec select user posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		if err := rows.Scan(&postID); err != nil {
			return model.User{}, fmt.Errorf("scan error: %w", err)
		}
		u.PostIDs = append(u.PostIDs, postID)
	}
	if err := rows.Err(); err != nil {
		return model.User{}, fmt.Errorf("rows error: %w", err)
	}
	return u, nil
}

func (s *UserStorage) AddPostToUser(ctx context.Context, userID, postID int64) error {
	query, args, err := sq.
		Insert(tableinfo.UserPostsTableName).
		Columns(tableinfo.UserPostUserIDColumn, tableinfo.UserPostPostIDColumn).
		Values(userID, postID).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec insert user post: %w", err)
	}
	return nil
}

func (s *UserStorage) RemovePostFromUser(ctx context.Context, userID, postID int64) error {
	query, args, err := sq.
		Delete(tableinfo.UserPostsTableName).
		Where(sq.Eq{
			tableinfo.UserPostUserIDColumn: userID,
			tableinfo.UserPostPostIDColumn: postID,
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec delete user post: %w", err)
	}
	return nil
}
