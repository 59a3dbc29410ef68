package post

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mention-earth/feed-bot/internal/domain"
	"github.com/mention-earth/feed-bot/internal/repositories"
	"github.com/mention-earth/feed-bot/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

const postColumns = "id, name, username, avatar, content, time_label, replies, reposts, likes"

func (p *Pgx) Create(ctx context.Context, post domain.Post) error {
	query, args, err := repositories.SqBuilder.
		Insert("posts").
		Columns("id", "name", "username", "avatar", "content", "time_label", "replies", "reposts", "likes").
		Values(post.ID, post.Name, post.Username, post.Avatar, post.Content, post.Time, post.Replies, post.Reposts, post.Likes).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (p *Pgx) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var post domain.Post
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&post.ID, &post.Name, &post.Username, &post.Avatar,
		&post.Content, &post.Time, &post.Replies, &post.Reposts, &post.Likes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &post, nil
}

func (p *Pgx) List(ctx context.Context, limit int) ([]domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(postColumns).
		From("posts").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID, &post.Name, &post.Username, &post.Avatar,
			&post.Content, &post.Time, &post.Replies, &post.Reposts, &post.Likes,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// Search matches post content case-insensitively. Used as the search source
// when no search index is configured.
func (p *Pgx) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	sql, args, err := repositories.SqBuilder.
		Select("id", "name", "avatar", "content", "time_label").
		From("posts").
		Where(sq.ILike{"content": "%" + query + "%"}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var r domain.SearchResult
		if err := rows.Scan(&r.ID, &r.Name, &r.Avatar, &r.Content, &r.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
