package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/pagination"
	"github.com/maxviazov/paginater/internal/repository"
)

type authorService struct {
	authors repository.AuthorRepository
	paging  *pagination.Config
	log     zerolog.Logger
}

func NewAuthorService(authors repository.AuthorRepository, paging *pagination.Config, logger zerolog.Logger) AuthorService {
	l := logger.With().Str("module", "service").Str("component", "author").Logger()
	return &authorService{authors: authors, paging: paging, log: l}
}

func (s *authorService) CreateAuthor(ctx context.Context, name, email string, public bool) (model.Author, error) {
	start := time.Now()
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if utf8.RuneCountInString(name) > maxNameLen {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be <= 100"})
	}
	if !isValidEmail(email) {
		ferrs = append(ferrs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("author validation failed")
		return model.Author{}, err
	}

	out, err := s.authors.Create(ctx, model.Author{Name: name, Email: email, Public: public})
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("create author failed")
		return model.Author{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("author_id", out.ID).Msg("author created")
	return out, nil
}

func (s *authorService) GetAuthor(ctx context.Context, id int64) (model.Author, error) {
	if id <= 0 {
		return model.Author{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.authors.GetByID(ctx, id)
}

func (s *authorService) ListAuthors(ctx context.Context, params ListParams) (pagination.Collection[model.Author], error) {
	if err := newInvalidInput(params.validate()); err != nil {
		return pagination.Collection[model.Author]{}, err
	}
	w := params.Window(s.paging)
	res, err := s.authors.List(ctx, repository.PageOf(w))
	if err != nil {
		s.log.Error().Err(err).Int("limit", w.Limit()).Int("offset", w.Offset()).Msg("list authors failed")
		return pagination.Collection[model.Author]{}, err
	}
	return collect(res, w, s.paging), nil
}
