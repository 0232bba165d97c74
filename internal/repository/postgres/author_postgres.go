package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/repository"
)

const authorColumns = `id, name, email, public, created_at, updated_at`

type authorRepository struct{ pool *pgxpool.Pool }

func NewAuthorRepository(pool *pgxpool.Pool) repository.AuthorRepository {
	return &authorRepository{pool: pool}
}

func scanAuthor(row pgx.Row, dst *model.Author, extra ...any) error {
	return row.Scan(append([]any{&dst.ID, &dst.Name, &dst.Email, &dst.Public, &dst.CreatedAt, &dst.UpdatedAt}, extra...)...)
}

func (r *authorRepository) Create(ctx context.Context, a model.Author) (model.Author, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Author{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO authors (name, email, public) VALUES ($1, $2, $3)
		 RETURNING `+authorColumns,
		a.Name, a.Email, a.Public,
	)
	var out model.Author
	if err := scanAuthor(row, &out); err != nil {
		return model.Author{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *authorRepository) GetByID(ctx context.Context, id int64) (model.Author, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Author{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id)
	var out model.Author
	if err := scanAuthor(row, &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Author{}, repository.ErrNotFound
		}
		return model.Author{}, repository.MapPgError(err)
	}
	return out, nil
}

// List returns one page ordered by id. The total comes from a separate COUNT so that pages past
// the end still report it; COUNT(*) OVER() would be lost with the rows.
func (r *authorRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Author], error) {
	var res repository.PageResult[model.Author]
	if err := ensurePool(r.pool); err != nil {
		return res, err
	}
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&res.Total); err != nil {
		return res, repository.MapPgError(err)
	}
	res.Items = []model.Author{}
	if p.Empty() || res.Total == 0 {
		return res, nil
	}

	limit, offset := limitArg(p)
	rows, err := exec.Query(ctx,
		`SELECT `+authorColumns+` FROM authors ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return res, repository.MapPgError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return res, repository.MapPgError(err)
		}
		res.Items = append(res.Items, a)
	}
	return res, repository.MapPgError(rows.Err())
}

// Exists performs a lightweight check to see if an author with the given ID exists.
func (r *authorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

var _ repository.AuthorRepository = (*authorRepository)(nil)
