package entities

import (
	"errors"
	"time"
)

// Post representa um post do blog
type Post struct {
	ID          string
	AuthorID    string
	Title       string
	Body        string
	Slug        string
	CoverImage  *string // chave no file store, ex: posts/<uuid>.jpg
	IsPublished bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft delete
}

// IsDeleted verifica se o post foi deletado (soft delete)
func (p *Post) IsDeleted() bool {
	return p.DeletedAt != nil
}

// SetPublished altera o estado de publicação mantendo published_at coerente:
// preenchido na transição para publicado, limpo ao despublicar.
func (p *Post) SetPublished(published bool, now time.Time) {
	switch {
	case published && !p.IsPublished:
		p.PublishedAt = &now
	case !published:
		p.PublishedAt = nil
	}
	p.IsPublished = published
}

// Validate valida regras de negócio da entidade Post
func (p *Post) Validate() error {
	if p.AuthorID == "" {
		return errors.New("author is required")
	}

	if p.Title == "" {
		return errors.New("title is required")
	}

	if p.Body == "" {
		return errors.New("body is required")
	}

	if p.Slug == "" {
		return errors.New("slug is required")
	}

	return nil
}
