package model

// Field implements exposure.FieldAccessor.
func (a *Author) Field(name string) (any, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "name":
		return a.Name, true
	case "email":
		return a.Email, true
	case "public":
		return a.Public, true
	case "created_at":
		return a.CreatedAt, true
	case "updated_at":
		return a.UpdatedAt, true
	}
	return nil, false
}

// Field implements exposure.FieldAccessor. A missing author is reported as absent.
func (a *Article) Field(name string) (any, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "author_id":
		return a.AuthorID, true
	case "author":
		if a.Author == nil {
			return nil, false
		}
		return a.Author, true
	case "title":
		return a.Title, true
	case "body":
		return a.Body, true
	case "status":
		return a.Status, true
	case "tags":
		return a.Tags, true
	case "created_at":
		return a.CreatedAt, true
	case "updated_at":
		return a.UpdatedAt, true
	}
	return nil, false
}
