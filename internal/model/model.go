// Package model contains domain entities used across layers.
// I keep it lean: data shapes plus the field lookups the exposure layer reads them through.
package model

import "time"

// Article statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Author writes articles. Email is only rendered for public authors or admin callers.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Article is a piece of content owned by an author.
// Author is populated by list and get queries; it is nil on freshly created rows.
type Article struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Author    *Author   `json:"author,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    string    `json:"status"` // draft, published, archived
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
