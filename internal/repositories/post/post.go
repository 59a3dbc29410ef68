package post

import (
	"context"
	"errors"

	"github.com/mention-earth/feed-bot/internal/domain"
)

var (
	ErrNotFound      = errors.New("post not found")
	ErrAlreadyExists = errors.New("post already exists")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go

// Repository stores the feed posts.
type Repository interface {
	Create(ctx context.Context, post domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, limit int) ([]domain.Post, error)
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}
