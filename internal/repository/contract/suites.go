// Package contract holds behavior suites every repository implementation must pass.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/pagination"
	"github.com/maxviazov/paginater/internal/repository"
)

type AuthorFactory func(t *testing.T) (repository.AuthorRepository, func())

type ArticleFactory func(t *testing.T) (repo repository.ArticleRepository, authors repository.AuthorRepository, cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, authors repository.AuthorRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func seedAuthors(t *testing.T, repo repository.AuthorRepository, n int) []model.Author {
	t.Helper()
	out := make([]model.Author, 0, n)
	for i := range n {
		a, err := repo.Create(context.Background(), model.Author{
			Name:   fmt.Sprintf("Author %02d", i+1),
			Email:  fmt.Sprintf("author%02d@example.com", i+1),
			Public: i%2 == 0,
		})
		if err != nil {
			t.Fatalf("seed author %d: %v", i, err)
		}
		out = append(out, a)
	}
	return out
}

func RunAuthorRepositoryContract(t *testing.T, makeRepo AuthorFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Author{Name: "Ann", Email: "ann@example.com", Public: true})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 || created.CreatedAt.IsZero() {
			t.Fatalf("expected id and timestamps, got %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Name != "Ann" || got.Email != "ann@example.com" || !got.Public {
			t.Fatalf("mismatch: %+v", got)
		}
		ok, err := repo.Exists(ctx, created.ID)
		if err != nil || !ok {
			t.Fatalf("expected exists, got %v %v", ok, err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		ok, err := repo.Exists(context.Background(), 999999)
		if err != nil || ok {
			t.Fatalf("expected not exists, got %v %v", ok, err)
		}
	})

	t.Run("create_duplicate_email", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, model.Author{Name: "A", Email: "dup@example.com"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, model.Author{Name: "B", Email: "dup@example.com"})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("list_pages", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seeded := seedAuthors(t, repo, 7)

		cases := []struct {
			name    string
			page    repository.Page
			wantIDs []int64
		}{
			{"first", repository.Page{Limit: 3, Offset: 0}, []int64{seeded[0].ID, seeded[1].ID, seeded[2].ID}},
			{"last partial", repository.Page{Limit: 3, Offset: 6}, []int64{seeded[6].ID}},
			{"past end", repository.Page{Limit: 3, Offset: 9}, nil},
			{"negative offset", repository.Page{Limit: 3, Offset: -2}, nil},
			{"unbounded", repository.Page{Limit: pagination.Unbounded, Offset: 5}, []int64{seeded[5].ID, seeded[6].ID}},
		}
		for _, tc := range cases {
			res, err := repo.List(ctx, tc.page)
			if err != nil {
				t.Fatalf("%s: list: %v", tc.name, err)
			}
			if res.Total != 7 {
				t.Fatalf("%s: expected total 7, got %d", tc.name, res.Total)
			}
			if res.Items == nil {
				t.Fatalf("%s: items must be non-nil", tc.name)
			}
			if got := authorIDs(res.Items); !equalIDs(got, tc.wantIDs) {
				t.Fatalf("%s: expected ids %v, got %v", tc.name, tc.wantIDs, got)
			}
		}
	})
}

func RunArticleRepositoryContract(t *testing.T, makeRepo ArticleFactory) {
	t.Helper()

	t.Run("create_and_get_with_author", func(t *testing.T) {
		repo, authors, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		au := seedAuthors(t, authors, 1)[0]
		created, err := repo.Create(ctx, model.Article{
			AuthorID: au.ID, Title: "Hello", Body: "World", Status: model.StatusPublished, Tags: []string{"go"},
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.Author != nil {
			t.Fatalf("create should not populate author")
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Title != "Hello" || got.Status != model.StatusPublished || len(got.Tags) != 1 || got.Tags[0] != "go" {
			t.Fatalf("mismatch: %+v", got)
		}
		if got.Author == nil || got.Author.ID != au.ID || got.Author.Name != au.Name {
			t.Fatalf("expected author %d attached, got %+v", au.ID, got.Author)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 42424242)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_unknown_author_conflict", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Create(context.Background(), model.Article{AuthorID: 9999999, Title: "X", Status: model.StatusDraft})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("create_duplicate_title", func(t *testing.T) {
		repo, authors, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		au := seedAuthors(t, authors, 1)[0]
		a := model.Article{AuthorID: au.ID, Title: "Same", Status: model.StatusDraft}
		if _, err := repo.Create(ctx, a); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := repo.Create(ctx, a); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("list_filter_and_pages", func(t *testing.T) {
		repo, authors, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		aus := seedAuthors(t, authors, 2)
		for i := range 6 {
			status := model.StatusPublished
			if i%3 == 2 {
				status = model.StatusDraft
			}
			_, err := repo.Create(ctx, model.Article{
				AuthorID: aus[i%2].ID, Title: fmt.Sprintf("A-%d", i), Status: status,
			})
			if err != nil {
				t.Fatalf("seed article %d: %v", i, err)
			}
		}

		res, err := repo.List(ctx, repository.ArticleFilter{}, repository.Page{Limit: 4, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 4 || res.Total != 6 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		for i := 1; i < len(res.Items); i++ {
			if res.Items[i-1].ID >= res.Items[i].ID {
				t.Fatalf("items not ordered by id: %v", articleIDs(res.Items))
			}
		}
		for _, a := range res.Items {
			if a.Author == nil || a.Author.ID != a.AuthorID {
				t.Fatalf("author not attached to %d", a.ID)
			}
		}

		res, err = repo.List(ctx, repository.ArticleFilter{AuthorID: aus[0].ID}, repository.Page{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("list by author: %v", err)
		}
		if len(res.Items) != 1 || res.Total != 3 || res.Items[0].Title != "A-4" {
			t.Fatalf("unexpected author page: total=%d items=%v", res.Total, articleIDs(res.Items))
		}

		res, err = repo.List(ctx, repository.ArticleFilter{Status: model.StatusDraft}, repository.Page{Limit: pagination.Unbounded})
		if err != nil {
			t.Fatalf("list drafts: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 2 {
			t.Fatalf("unexpected drafts: len=%d total=%d", len(res.Items), res.Total)
		}

		res, err = repo.List(ctx, repository.ArticleFilter{Status: model.StatusArchived}, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list archived: %v", err)
		}
		if res.Items == nil || len(res.Items) != 0 || res.Total != 0 {
			t.Fatalf("expected empty non-nil page, got %+v", res)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, authors, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := authors.Create(ctx, model.Author{Name: "Tx", Email: "commit@example.com"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := authors.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, authors, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := authors.Create(ctx, model.Author{Name: "Tx", Email: "rollback@example.com"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := authors.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected rolled back row to be gone, got err=%v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("ping failed: %v", err)
		}
	})
}

func authorIDs(items []model.Author) []int64 {
	out := make([]int64, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}

func articleIDs(items []model.Article) []int64 {
	out := make([]int64, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
