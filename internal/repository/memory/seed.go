package memory

import (
	"context"
	"fmt"

	"github.com/maxviazov/paginater/internal/model"
)

// Seed fills the store with a few authors and articlesPerAuthor articles each, for demos.
func (s *Store) Seed(ctx context.Context, articlesPerAuthor int) error {
	authors := []model.Author{
		{Name: "Ada Lovelace", Email: "ada@example.com", Public: true},
		{Name: "Grace Hopper", Email: "grace@example.com"},
		{Name: "Ken Thompson", Email: "ken@example.com", Public: true},
	}
	statuses := []string{model.StatusPublished, model.StatusPublished, model.StatusDraft, model.StatusArchived}
	return s.WithinTx(ctx, func(ctx context.Context) error {
		for _, a := range authors {
			created, err := s.Authors().Create(ctx, a)
			if err != nil {
				return fmt.Errorf("seed author %q: %w", a.Name, err)
			}
			for i := range articlesPerAuthor {
				_, err := s.Articles().Create(ctx, model.Article{
					AuthorID: created.ID,
					Title:    fmt.Sprintf("%s, note %d", created.Name, i+1),
					Body:     fmt.Sprintf("Note %d by %s. Lorem ipsum dolor sit amet, consectetur adipiscing elit.", i+1, created.Name),
					Status:   statuses[i%len(statuses)],
					Tags:     []string{"notes", fmt.Sprintf("batch-%d", i/10+1)},
				})
				if err != nil {
					return fmt.Errorf("seed article %d for %q: %w", i+1, a.Name, err)
				}
			}
		}
		return nil
	})
}
