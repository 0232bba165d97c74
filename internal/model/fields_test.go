package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArticle_Field(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a := &Article{ID: 3, AuthorID: 9, Title: "T", Body: "B", Status: StatusDraft, Tags: []string{"x"}, CreatedAt: ts}

	v, ok := a.Field("title")
	assert.True(t, ok)
	assert.Equal(t, "T", v)

	v, ok = a.Field("created_at")
	assert.True(t, ok)
	assert.Equal(t, ts, v)

	_, ok = a.Field("author")
	assert.False(t, ok, "nil author is absent")

	a.Author = &Author{ID: 9}
	v, ok = a.Field("author")
	assert.True(t, ok)
	assert.Same(t, a.Author, v)

	_, ok = a.Field("password")
	assert.False(t, ok)
}

func TestAuthor_Field(t *testing.T) {
	a := &Author{ID: 1, Name: "Ann", Email: "a@x.com", Public: true}
	for name, want := range map[string]any{"id": int64(1), "name": "Ann", "email": "a@x.com", "public": true} {
		v, ok := a.Field(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, v, name)
	}
	_, ok := a.Field("articles")
	assert.False(t, ok)
}
