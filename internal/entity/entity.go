// Package entity declares how articles and authors are exposed to API clients.
package entity

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maxviazov/paginater/internal/exposure"
	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/pagination"
)

// Option keys understood by the declared types.
const (
	OptAdmin   = "admin"    // reveal private author fields
	OptSummary = "summary"  // drop article bodies
	OptBaseURL = "base_url" // prefix for computed links
)

// Type names in the registry.
const (
	TypeRecord  = "record"
	TypeAuthor  = "author"
	TypeArticle = "article"
)

const excerptLen = 140

// Set is the registry of exposure types plus direct handles to the ones callers render with.
type Set struct {
	Registry *exposure.Registry
	Record   *exposure.Type
	Author   *exposure.Type
	Article  *exposure.Type
}

// New declares the record, author and article types on a fresh registry whose paging falls back to root.
func New(root *pagination.Config) *Set {
	reg := exposure.NewRegistry(root)

	record := reg.MustRegister(TypeRecord, nil, pagination.Settings{})
	record.MustExpose([]string{"id"})
	record.MustExpose([]string{"created_at", "updated_at"}, exposure.FormatWith(timestamp))

	author := reg.MustRegister(TypeAuthor, record, pagination.Settings{})
	author.MustExpose([]string{"name"})
	author.MustExpose([]string{"email"}, exposure.If(emailVisible))

	article := reg.MustRegister(TypeArticle, record, pagination.Settings{DefaultPerPage: 20, MaxPerPage: 100})
	article.MustExpose([]string{"title", "status", "tags"})
	article.MustExpose([]string{"body"}, exposure.Unless(exposure.OptionSet(OptSummary)))
	article.MustExpose([]string{"excerpt"}, exposure.Compute(excerpt))
	article.MustExpose([]string{"author"}, exposure.Using(author))
	article.MustExpose([]string{"url"}, exposure.Compute(articleURL))

	return &Set{Registry: reg, Record: record, Author: author, Article: article}
}

func timestamp(v any) any {
	t, ok := v.(time.Time)
	if !ok || t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func emailVisible(subject any, opts exposure.Options) bool {
	if opts.Bool(OptAdmin) {
		return true
	}
	a, ok := subject.(*model.Author)
	return ok && a.Public
}

func excerpt(subject any, _ exposure.Options) any {
	a, ok := subject.(*model.Article)
	if !ok {
		return nil
	}
	return Excerpt(a.Body, excerptLen)
}

func articleURL(subject any, opts exposure.Options) any {
	a, ok := subject.(*model.Article)
	if !ok {
		return nil
	}
	base := strings.TrimRight(opts.String(OptBaseURL), "/")
	return base + "/articles/" + strconv.FormatInt(a.ID, 10)
}

// Excerpt cuts s to at most n runes on a word boundary when one is available, appending "…" when cut.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := []rune(s)[:n]
	out := string(cut)
	if i := strings.LastIndexByte(out, ' '); i > 0 {
		out = out[:i]
	}
	return strings.TrimRight(out, " .,;:") + "…"
}

// Present renders each item through t. Items are addressed in place so pointer-receiver field
// accessors apply; the result is always a non-nil slice.
func Present[T any](t *exposure.Type, items []T, opts exposure.Options) []any {
	out := make([]any, 0, len(items))
	for i := range items {
		out = append(out, t.Represent(&items[i], nil).Map(opts))
	}
	return out
}
