package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/pagination"
	"github.com/maxviazov/paginater/internal/repository"
)

type articleService struct {
	articles repository.ArticleRepository
	authors  repository.AuthorRepository
	tx       repository.TxManager
	paging   *pagination.Config
	log      zerolog.Logger
}

// NewArticleService wires the article use cases. paging is the article type's paging config.
func NewArticleService(articles repository.ArticleRepository, authors repository.AuthorRepository, tx repository.TxManager, paging *pagination.Config, logger zerolog.Logger) ArticleService {
	l := logger.With().Str("module", "service").Str("component", "article").Logger()
	return &articleService{articles: articles, authors: authors, tx: tx, paging: paging, log: l}
}

func (s *articleService) CreateArticle(ctx context.Context, in CreateArticleInput) (model.Article, error) {
	start := time.Now()

	// Normalize early so validation and persistence see canonical values.
	in.Title = strings.TrimSpace(in.Title)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if in.Status == "" {
		in.Status = model.StatusDraft
	}
	in.Tags = normalizeTags(in.Tags)

	var ferrs []FieldError
	if in.AuthorID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "author_id", Message: "must be > 0"})
	}
	if in.Title == "" {
		ferrs = append(ferrs, FieldError{Field: "title", Message: "must not be empty"})
	} else if utf8.RuneCountInString(in.Title) > maxTitleLen {
		ferrs = append(ferrs, FieldError{Field: "title", Message: "length must be <= 200"})
	}
	if utf8.RuneCountInString(in.Body) > maxBodyLen {
		ferrs = append(ferrs, FieldError{Field: "body", Message: "length must be <= 20000"})
	}
	if !isValidStatus(in.Status) {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of draft, published, archived"})
	}
	ferrs = append(ferrs, validateTags(in.Tags)...)

	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Int64("author_id", in.AuthorID).Msg("article validation failed")
		return model.Article{}, err
	}

	var out model.Article
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Existence check gives a field error instead of a bare FK conflict.
		author, err := s.authors.GetByID(ctx, in.AuthorID)
		if errors.Is(err, repository.ErrNotFound) {
			return newInvalidInput([]FieldError{{Field: "author_id", Message: "author does not exist"}})
		}
		if err != nil {
			return err
		}
		out, err = s.articles.Create(ctx, model.Article{
			AuthorID: in.AuthorID,
			Title:    in.Title,
			Body:     in.Body,
			Status:   in.Status,
			Tags:     in.Tags,
		})
		if err != nil {
			return err
		}
		out.Author = &author
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidInput) {
			s.log.Error().Err(err).Int64("author_id", in.AuthorID).Str("title", in.Title).Msg("create article failed")
		}
		return model.Article{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("article_id", out.ID).Msg("article created")
	return out, nil
}

func (s *articleService) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	if id <= 0 {
		return model.Article{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.articles.GetByID(ctx, id)
}

// ListArticles fetches one page. The window is computed before the query, so per, page and
// padding behave the same whether the store slices in memory or in SQL.
func (s *articleService) ListArticles(ctx context.Context, f repository.ArticleFilter, params ListParams) (pagination.Collection[model.Article], error) {
	var ferrs []FieldError
	if f.AuthorID < 0 {
		ferrs = append(ferrs, FieldError{Field: "author_id", Message: "must be > 0"})
	}
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	if f.Status != "" && !isValidStatus(f.Status) {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of draft, published, archived"})
	}
	ferrs = append(ferrs, params.validate()...)
	if err := newInvalidInput(ferrs); err != nil {
		return pagination.Collection[model.Article]{}, err
	}

	w := params.Window(s.paging)
	res, err := s.articles.List(ctx, f, repository.PageOf(w))
	if err != nil {
		s.log.Error().Err(err).Int("limit", w.Limit()).Int("offset", w.Offset()).Msg("list articles failed")
		return pagination.Collection[model.Article]{}, err
	}
	return collect(res, w, s.paging), nil
}

// collect wraps a fetched page so callers get the window metadata with the items.
func collect[T any](res repository.PageResult[T], w pagination.Window, cfg *pagination.Config) pagination.Collection[T] {
	return pagination.New(res.Items,
		pagination.WithLimit(w.Limit()),
		pagination.WithOffset(w.Offset()),
		pagination.WithTotalCount(res.Total),
		pagination.WithConfig(cfg),
	)
}
