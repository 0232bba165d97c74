package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/repository"
)

const articleColumns = `ar.id, ar.author_id, ar.title, ar.body, ar.status, ar.tags, ar.created_at, ar.updated_at`

// joined reads carry the author alongside each article
const articleWithAuthor = `SELECT ` + articleColumns + `,
	au.id, au.name, au.email, au.public, au.created_at, au.updated_at
	FROM articles ar
	JOIN authors au ON au.id = ar.author_id`

type articleRepository struct{ pool *pgxpool.Pool }

func NewArticleRepository(pool *pgxpool.Pool) repository.ArticleRepository {
	return &articleRepository{pool: pool}
}

func scanArticle(row pgx.Row, withAuthor bool) (model.Article, error) {
	var a model.Article
	dst := []any{&a.ID, &a.AuthorID, &a.Title, &a.Body, &a.Status, &a.Tags, &a.CreatedAt, &a.UpdatedAt}
	var au model.Author
	if withAuthor {
		dst = append(dst, &au.ID, &au.Name, &au.Email, &au.Public, &au.CreatedAt, &au.UpdatedAt)
	}
	if err := row.Scan(dst...); err != nil {
		return model.Article{}, err
	}
	if withAuthor {
		a.Author = &au
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a, nil
}

func (r *articleRepository) Create(ctx context.Context, a model.Article) (model.Article, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Article{}, err
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO articles AS ar (author_id, title, body, status, tags)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+articleColumns,
		a.AuthorID, a.Title, a.Body, a.Status, a.Tags,
	)
	out, err := scanArticle(row, false)
	if err != nil {
		return model.Article{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (model.Article, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Article{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, articleWithAuthor+` WHERE ar.id = $1`, id)
	out, err := scanArticle(row, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Article{}, repository.ErrNotFound
		}
		return model.Article{}, repository.MapPgError(err)
	}
	return out, nil
}

// where renders the filter as a WHERE clause with positional args starting at $1.
func where(f repository.ArticleFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.AuthorID != 0 {
		args = append(args, f.AuthorID)
		conds = append(conds, "ar.author_id = $"+strconv.Itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "ar.status = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *articleRepository) List(ctx context.Context, f repository.ArticleFilter, p repository.Page) (repository.PageResult[model.Article], error) {
	var res repository.PageResult[model.Article]
	if err := ensurePool(r.pool); err != nil {
		return res, err
	}
	exec := getQ(ctx, r.pool)
	clause, args := where(f)
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM articles ar`+clause, args...).Scan(&res.Total); err != nil {
		return res, repository.MapPgError(err)
	}
	res.Items = []model.Article{}
	if p.Empty() || res.Total == 0 {
		return res, nil
	}

	limit, offset := limitArg(p)
	n := len(args)
	query := articleWithAuthor + clause +
		` ORDER BY ar.id LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	rows, err := exec.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return res, repository.MapPgError(err)
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanArticle(rows, true)
		if err != nil {
			return res, repository.MapPgError(err)
		}
		res.Items = append(res.Items, a)
	}
	return res, repository.MapPgError(rows.Err())
}

var _ repository.ArticleRepository = (*articleRepository)(nil)
