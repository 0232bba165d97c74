package repository

import (
	"context"

	"github.com/maxviazov/paginater/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// ArticleFilter narrows article listings. Zero values match everything.
type ArticleFilter struct {
	AuthorID int64
	Status   string
}

// ArticleRepository declares persistence operations for articles.
// Reads populate Article.Author; Create returns the row without it.
type ArticleRepository interface {
	Create(ctx context.Context, a model.Article) (model.Article, error)
	GetByID(ctx context.Context, id int64) (model.Article, error)
	List(ctx context.Context, f ArticleFilter, p Page) (PageResult[model.Article], error)
}

// AuthorRepository declares persistence operations for authors.
type AuthorRepository interface {
	Create(ctx context.Context, a model.Author) (model.Author, error)
	GetByID(ctx context.Context, id int64) (model.Author, error)
	List(ctx context.Context, p Page) (PageResult[model.Author], error)
	Exists(ctx context.Context, id int64) (bool, error)
}
