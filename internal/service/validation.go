package service

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/paginater/internal/model"
	"github.com/maxviazov/paginater/internal/pagination"
)

const (
	maxTitleLen = 200
	maxBodyLen  = 20000
	maxNameLen  = 100
	maxTags     = 10
	maxTagLen   = 32
)

var validate = validator.New()

// ListParams are the client's paging knobs. Zero values mean "not given".
type ListParams struct {
	Page    int
	Per     int
	All     bool
	Padding int
}

// Window applies the params to a fresh window in page, per, padding order. The total is filled in
// once the repository reports it.
func (p ListParams) Window(cfg *pagination.Config) pagination.Window {
	w := pagination.NewWindow(cfg.DefaultPerPage(), 0, 0, cfg).Page(p.Page)
	switch {
	case p.All:
		w = w.PerAll()
	case p.Per > 0:
		w = w.Per(p.Per)
	}
	return w.Padding(p.Padding)
}

func (p ListParams) validate() []FieldError {
	var ferrs []FieldError
	if p.Page < 0 {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "must be >= 1"})
	}
	if p.Per < 0 {
		ferrs = append(ferrs, FieldError{Field: "per", Message: "must be >= 1"})
	}
	if p.All && p.Per > 0 {
		ferrs = append(ferrs, FieldError{Field: "per", Message: "cannot be combined with all"})
	}
	return ferrs
}

func isValidStatus(status string) bool {
	switch status {
	case model.StatusDraft, model.StatusPublished, model.StatusArchived:
		return true
	default:
		return false
	}
}

func isValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// normalizeTags lowercases, trims and dedupes tags, keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func validateTags(tags []string) []FieldError {
	var ferrs []FieldError
	if len(tags) > maxTags {
		ferrs = append(ferrs, FieldError{Field: "tags", Message: "at most 10 tags allowed"})
	}
	for _, t := range tags {
		if utf8.RuneCountInString(t) > maxTagLen {
			ferrs = append(ferrs, FieldError{Field: "tags", Message: "tag length must be <= 32"})
			break
		}
	}
	return ferrs
}
