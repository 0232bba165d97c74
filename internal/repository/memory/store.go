// Package memory is an in-process repository implementation. Listings window the full, id-ordered
// row set through pagination.Collection, so they page exactly like the Postgres queries do.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/pagination"
	"github.com/maxviazov/paginater/internal/repository"
)

// Store holds authors and articles behind one lock.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	now      func() time.Time
	authors  map[int64]model.Author
	articles map[int64]model.Article
	authorID int64
	postID   int64
}

func NewStore() *Store {
	return &Store{
		now:      func() time.Time { return time.Now().UTC() },
		authors:  make(map[int64]model.Author),
		articles: make(map[int64]model.Article),
	}
}

// Authors returns the author repository view of the store.
func (s *Store) Authors() repository.AuthorRepository { return authorRepository{s} }

// Articles returns the article repository view of the store.
func (s *Store) Articles() repository.ArticleRepository { return articleRepository{s} }

// Ping implements repository.Pinger. The store is always ready unless ctx is done.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lockWrites takes the transaction lock for a write made outside a transaction, so a rollback
// can never discard it. Writes inside a transaction already hold it.
func (s *Store) lockWrites(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// WithinTx implements repository.TxManager. Transactions are serialized with every other write;
// when fn fails the store is restored to the snapshot taken before it ran. A nested call joins
// the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	authors, articles := maps.Clone(s.authors), maps.Clone(s.articles)
	authorID, postID := s.authorID, s.postID
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.mu.Lock()
		s.authors, s.articles = authors, articles
		s.authorID, s.postID = authorID, postID
		s.mu.Unlock()
		return err
	}
	return nil
}

// page windows rows already ordered by id.
func page[T any](rows []T, p repository.Page) repository.PageResult[T] {
	c := pagination.New(rows, pagination.WithLimit(p.Limit), pagination.WithOffset(p.Offset))
	items := append(make([]T, 0, c.Len()), c.Items()...)
	return repository.PageResult[T]{Items: items, Total: c.TotalCount()}
}

type authorRepository struct{ s *Store }

func (r authorRepository) Create(ctx context.Context, a model.Author) (model.Author, error) {
	if err := ctx.Err(); err != nil {
		return model.Author{}, err
	}
	defer r.s.lockWrites(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.authors {
		if strings.EqualFold(existing.Email, a.Email) {
			return model.Author{}, repository.ErrAlreadyExists
		}
	}
	r.s.authorID++
	a.ID = r.s.authorID
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.authors[a.ID] = a
	return a, nil
}

func (r authorRepository) GetByID(ctx context.Context, id int64) (model.Author, error) {
	if err := ctx.Err(); err != nil {
		return model.Author{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.authors[id]
	if !ok {
		return model.Author{}, repository.ErrNotFound
	}
	return a, nil
}

func (r authorRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Author], error) {
	if err := ctx.Err(); err != nil {
		return repository.PageResult[model.Author]{}, err
	}
	r.s.mu.RLock()
	rows := sortedByID(r.s.authors, func(a model.Author) int64 { return a.ID })
	r.s.mu.RUnlock()
	return page(rows, p), nil
}

func (r authorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.authors[id]
	return ok, nil
}

type articleRepository struct{ s *Store }

func (r articleRepository) Create(ctx context.Context, a model.Article) (model.Article, error) {
	if err := ctx.Err(); err != nil {
		return model.Article{}, err
	}
	defer r.s.lockWrites(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.authors[a.AuthorID]; !ok {
		return model.Article{}, repository.ErrConflict
	}
	for _, existing := range r.s.articles {
		if existing.AuthorID == a.AuthorID && existing.Title == a.Title {
			return model.Article{}, repository.ErrAlreadyExists
		}
	}
	r.s.postID++
	a.ID = r.s.postID
	a.Author = nil
	a.Tags = slices.Clone(a.Tags)
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if a.Status == "" {
		a.Status = model.StatusDraft
	}
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.articles[a.ID] = a
	return a, nil
}

func (r articleRepository) GetByID(ctx context.Context, id int64) (model.Article, error) {
	if err := ctx.Err(); err != nil {
		return model.Article{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.articles[id]
	if !ok {
		return model.Article{}, repository.ErrNotFound
	}
	return r.s.withAuthor(a), nil
}

func (r articleRepository) List(ctx context.Context, f repository.ArticleFilter, p repository.Page) (repository.PageResult[model.Article], error) {
	if err := ctx.Err(); err != nil {
		return repository.PageResult[model.Article]{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := sortedByID(r.s.articles, func(a model.Article) int64 { return a.ID })
	rows = slices.DeleteFunc(rows, func(a model.Article) bool {
		return (f.AuthorID != 0 && a.AuthorID != f.AuthorID) || (f.Status != "" && a.Status != f.Status)
	})
	res := page(rows, p)
	for i := range res.Items {
		res.Items[i] = r.s.withAuthor(res.Items[i])
	}
	return res, nil
}

// withAuthor attaches a copy of the article's author. Callers hold s.mu.
func (s *Store) withAuthor(a model.Article) model.Article {
	a.Tags = slices.Clone(a.Tags)
	if au, ok := s.authors[a.AuthorID]; ok {
		a.Author = &au
	}
	return a
}

func sortedByID[T any](m map[int64]T, id func(T) int64) []T {
	rows := slices.Collect(maps.Values(m))
	slices.SortFunc(rows, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return rows
}

var (
	_ repository.AuthorRepository  = authorRepository{}
	_ repository.ArticleRepository = articleRepository{}
	_ repository.TxManager         = (*Store)(nil)
	_ repository.Pinger            = (*Store)(nil)
)
