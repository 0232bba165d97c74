package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/repository"
	"github.com/maxviazov/paginater/internal/repository/contract"
)

func TestAuthorRepository_MemoryContract(t *testing.T) {
	contract.RunAuthorRepositoryContract(t, func(t *testing.T) (repository.AuthorRepository, func()) {
		return NewStore().Authors(), func() {}
	})
}

func TestArticleRepository_MemoryContract(t *testing.T) {
	contract.RunArticleRepositoryContract(t, func(t *testing.T) (repository.ArticleRepository, repository.AuthorRepository, func()) {
		s := NewStore()
		return s.Articles(), s.Authors(), func() {}
	})
}

func TestTxManager_MemoryContract(t *testing.T) {
	contract.RunTxManagerContract(t, func(t *testing.T) (repository.TxManager, repository.AuthorRepository, func()) {
		s := NewStore()
		return s, s.Authors(), func() {}
	})
}

func TestPinger_MemoryContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		return NewStore(), func() {}
	})
}

func TestStore_CanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Authors().Create(ctx, model.Author{Name: "A", Email: "a@x.com"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Articles().List(ctx, repository.ArticleFilter{}, repository.Page{Limit: 10})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}

func TestStore_ReturnedRowsAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	au, err := s.Authors().Create(ctx, model.Author{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	tags := []string{"go"}
	created, err := s.Articles().Create(ctx, model.Article{AuthorID: au.ID, Title: "T", Tags: tags})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, created.Status)

	tags[0] = "mutated"
	got, err := s.Articles().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, got.Tags)

	got.Tags[0] = "again"
	got.Author.Name = "changed"
	again, err := s.Articles().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, again.Tags)
	assert.Equal(t, "A", again.Author.Name)
}

func TestStore_Timestamps(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	au, err := s.Authors().Create(context.Background(), model.Author{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, fixed, au.CreatedAt)
	assert.Equal(t, fixed, au.UpdatedAt)
}

func TestStore_Seed(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Seed(context.Background(), 12))

	authors, err := s.Authors().List(context.Background(), repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, authors.Total)

	articles, err := s.Articles().List(context.Background(), repository.ArticleFilter{}, repository.Page{Limit: 5, Offset: 30})
	require.NoError(t, err)
	assert.Equal(t, 36, articles.Total)
	assert.Len(t, articles.Items, 5)

	published, err := s.Articles().List(context.Background(), repository.ArticleFilter{Status: model.StatusPublished}, repository.Page{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 18, published.Total)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	au, err := s.Authors().Create(ctx, model.Author{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Articles().Create(ctx, model.Article{AuthorID: au.ID, Title: time.Duration(i).String()})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	res, err := s.Articles().List(ctx, repository.ArticleFilter{}, repository.Page{Limit: 10, Offset: 45})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Total)
	assert.Len(t, res.Items, 5)
}

func TestStore_RollbackKeepsWritesMadeOutsideTx(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	rollback := errors.New("rollback")

	started := make(chan struct{})
	done := make(chan error, 1)
	err := s.WithinTx(ctx, func(txCtx context.Context) error {
		_, err := s.Authors().Create(txCtx, model.Author{Name: "In Tx", Email: "tx@x.com"})
		require.NoError(t, err)

		go func() {
			close(started)
			_, err := s.Authors().Create(ctx, model.Author{Name: "Outside", Email: "out@x.com"})
			done <- err
		}()
		<-started
		time.Sleep(20 * time.Millisecond)
		return rollback
	})
	require.ErrorIs(t, err, rollback)
	require.NoError(t, <-done)

	res, err := s.Authors().List(ctx, repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Outside", res.Items[0].Name)
	assert.Equal(t, int64(1), res.Items[0].ID)
}

func TestStore_NestedTxJoinsOuter(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	rollback := errors.New("rollback")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		return s.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := s.Authors().Create(ctx, model.Author{Name: "A", Email: "a@x.com"}); err != nil {
				return err
			}
			return rollback
		})
	})
	require.ErrorIs(t, err, rollback)

	_, err = s.Authors().GetByID(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
