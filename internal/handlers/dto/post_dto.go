package dto

import (
	"mime/multipart"
	"time"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
)

// CreatePostRequest aceita JSON ou multipart/form-data (necessário para cover_image)
type CreatePostRequest struct {
	Title       string                `json:"title" form:"title" binding:"required,max=255"`
	Body        string                `json:"body" form:"body" binding:"required"`
	Slug        *string               `json:"slug" form:"slug" binding:"omitempty,max=255"`
	IsPublished *bool                 `json:"is_published" form:"is_published"`
	CoverImage  *multipart.FileHeader `json:"-" form:"cover_image" swaggerignore:"true"`
}

// UpdatePostRequest tem todos os campos opcionais
type UpdatePostRequest struct {
	Title       *string               `json:"title" form:"title" binding:"omitempty,min=1,max=255"`
	Body        *string               `json:"body" form:"body" binding:"omitempty,min=1"`
	Slug        *string               `json:"slug" form:"slug" binding:"omitempty,min=1,max=255"`
	IsPublished *bool                 `json:"is_published" form:"is_published"`
	CoverImage  *multipart.FileHeader `json:"-" form:"cover_image" swaggerignore:"true"`
}

// ListPostsQuery são os parâmetros de paginação da listagem
type ListPostsQuery struct {
	Page    int `form:"page,default=1"`
	PerPage int `form:"per_page,default=10"`
}

// PostResponse representa a resposta de um post
type PostResponse struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"author_id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Slug        string     `json:"slug"`
	CoverImage  *string    `json:"cover_image"` // URL absoluta ou null
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToPostResponse converte uma entidade Post; coverURL já deve estar resolvida
func ToPostResponse(post *entities.Post, coverURL *string) PostResponse {
	return PostResponse{
		ID:          post.ID,
		AuthorID:    post.AuthorID,
		Title:       post.Title,
		Body:        post.Body,
		Slug:        post.Slug,
		CoverImage:  coverURL,
		IsPublished: post.IsPublished,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
