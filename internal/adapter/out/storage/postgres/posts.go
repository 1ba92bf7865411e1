package postgres

import (
	"context"
	"errors"
	"fmt"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/internal/service"
	"socialfeed/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

var ErrBuildingQuery = errors.New("error building sql-query")

var postColumns = []string{
	tableinfo.PostIDColumn,
	tableinfo.PostTitleColumn,
	tableinfo.PostContentColumn,
	tableinfo.PostImageURLColumn,
	tableinfo.PostUserIDColumn,
	tableinfo.PostCreatedAtColumn,
}

type PostStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewPostStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *PostStorage {
	return &PostStorage{
		db:     db,
		getter: getter,
	}
}

func scanPost(row pgx.Row) (model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.ImageURL,
		&p.UserID,
		&p.CreatedAt,
	)
	return p, err
}

func (s *PostStorage) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	query, args, err := sq.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostTitleColumn,
			tableinfo.PostContentColumn,
			tableinfo.PostImageURLColumn,
			tableinfo.PostUserIDColumn,
		).
		Values(post.Title, post.Content, post.ImageURL, post.UserID).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s, %s",
			tableinfo.PostIDColumn,
			tableinfo.PostTitleColumn,
			tableinfo.PostContentColumn,
			tableinfo.PostImageURLColumn,
			tableinfo.PostUserIDColumn,
			tableinfo.PostCreatedAtColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	out, err := scanPost(tr.QueryRow(ctx, query, args...))
	if err != nil {
		return model.Post{}, fmt.Errorf("exec error creating post: %w", err)
	}
	return out, nil
}

func (s *PostStorage) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	query, args, err := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	out, err := scanPost(tr.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, service.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("exec select post by id: %w", err)
	}
	return out, nil
}

// ListPosts pages the feed newest first.
func (s *PostStorage) ListPosts(ctx context.Context, params storage.ListPostsParams) ([]model.Post, error) {
	if params.Limit <= 0 {
		params.Limit = service.DefaultPerPage
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	query, args, err := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		OrderBy(
			tableinfo.PostCreatedAtColumn+" DESC",
			tableinfo.PostIDColumn+" DESC",
		).
		Offset(uint64(params.Offset)).
		Limit(uint64(params.Limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec error selecting posts: %w", err)
	}
	defer rows.Close()

	out := make([]model.Post, 0, params.Limit)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Content,
			&p.ImageURL,
			&p.UserID,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *PostStorage) CountPosts(ctx context.Context) (int64, error) {
	query, args, err := sq.
		Select("COUNT(*)").
		From(tableinfo.PostsTableName).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)

	var total int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("exec count posts: %w", err)
	}
	return total, nil
}

// UpdatePost rewrites the mutable columns; user_id and created_at are
// never touched.
func (s *PostStorage) UpdatePost(ctx context.Context, params storage.UpdatePostParams) (model.Post, error) {
	query, args, err := sq.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostTitleColumn, params.Title).
		Set(tableinfo.PostContentColumn, params.Content).
		Set(tableinfo.PostImageURLColumn, params.ImageURL).
		Where(sq.Eq{tableinfo.PostIDColumn: params.PostID}).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s, %s",
			tableinfo.PostIDColumn,
			tableinfo.PostTitleColumn,
			tableinfo.PostContentColumn,
			tableinfo.PostImageURLColumn,
			tableinfo.PostUserIDColumn,
			tableinfo.PostCreatedAtColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	out, err := scanPost(tr.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, service.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("exec update post: %w", err)
	}
	return out, nil
}

func (s *PostStorage) DeletePost(ctx context.Context, postID int64) error {
	query, args, err := sq.
		Delete(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	tag, err := tr.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}
