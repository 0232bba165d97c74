// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/pagination"
	"github.com/maxviazov/paginater/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field" yaml:"field" xml:"field"`
	Message string `json:"message" yaml:"message" xml:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// InvalidInput is newInvalidInput for callers outside the package, such as request binding.
func InvalidInput(fe ...FieldError) error { return newInvalidInput(fe) }

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v *invalidInputError
	if errors.As(err, &v) {
		return v.Fields()
	}
	return nil
}

// CreateArticleInput is what a client may set on a new article.
type CreateArticleInput struct {
	AuthorID int64
	Title    string
	Body     string
	Status   string
	Tags     []string
}

// ArticleService defines article-oriented use cases.
type ArticleService interface {
	CreateArticle(ctx context.Context, in CreateArticleInput) (model.Article, error)
	GetArticle(ctx context.Context, id int64) (model.Article, error)
	ListArticles(ctx context.Context, f repository.ArticleFilter, params ListParams) (pagination.Collection[model.Article], error)
}

// AuthorService defines author-oriented use cases.
type AuthorService interface {
	CreateAuthor(ctx context.Context, name, email string, public bool) (model.Author, error)
	GetAuthor(ctx context.Context, id int64) (model.Author, error)
	ListAuthors(ctx context.Context, params ListParams) (pagination.Collection[model.Author], error)
}
