package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
	"github.com/rafabene/avantpro-blog/internal/domain/errors"
	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	"github.com/rafabene/avantpro-blog/internal/domain/repositories"
	"github.com/rafabene/avantpro-blog/internal/domain/valueobjects"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// coverNamespace agrupa as capas no file store
	coverNamespace = "posts"
)

// PostService contém a lógica de negócio para posts
type PostService struct {
	posts  repositories.PostRepository
	files  ports.FileStore
	logger ports.Logger
	now    func() time.Time
}

// NewPostService cria um novo PostService; now pode ser nil (usa time.Now)
func NewPostService(
	posts repositories.PostRepository,
	files ports.FileStore,
	logger ports.Logger,
	now func() time.Time,
) *PostService {
	if now == nil {
		now = time.Now
	}
	return &PostService{
		posts:  posts,
		files:  files,
		logger: logger,
		now:    now,
	}
}

// CreatePostInput representa os dados para criar um post
type CreatePostInput struct {
	Title       string
	Body        string
	Slug        *string
	CoverImage  *ports.Upload
	IsPublished bool
}

// UpdatePostInput representa uma atualização parcial; campos nil não mudam
type UpdatePostInput struct {
	Title       *string
	Body        *string
	Slug        *string
	CoverImage  *ports.Upload
	IsPublished *bool
}

// PostPage é uma página de posts
type PostPage struct {
	Items    []*entities.Post
	Total    int64
	Page     int
	PageSize int
	LastPage int
}

// ListPosts lista posts não deletados, mais recentes primeiro
func (s *PostService) ListPosts(ctx context.Context, page, pageSize int) (*PostPage, error) {
	if page <= 0 {
		return nil, errors.Validation(errors.ErrInvalidPagination, "page")
	}
	switch {
	case pageSize < 0:
		return nil, errors.Validation(errors.ErrInvalidPagination, "per_page")
	case pageSize == 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	items, total, err := s.posts.List(ctx, repositories.PostFilters{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(pageSize) - 1) / int64(pageSize))
	if lastPage < 1 {
		lastPage = 1
	}

	return &PostPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		LastPage: lastPage,
	}, nil
}

// CreatePost cria um post para authorID
func (s *PostService) CreatePost(ctx context.Context, authorID string, input CreatePostInput) (*entities.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Validation(errors.ErrFieldRequired, "title")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, errors.Validation(errors.ErrFieldRequired, "body")
	}

	raw := title
	if input.Slug != nil && strings.TrimSpace(*input.Slug) != "" {
		raw = *input.Slug
	}
	slug, err := valueobjects.NewSlug(raw)
	if err != nil {
		return nil, err
	}

	if err := s.ensureSlugAvailable(ctx, slug.String(), ""); err != nil {
		return nil, err
	}

	// A imagem é gravada antes do post; falha aqui não persiste nada
	var cover *string
	if input.CoverImage != nil {
		key, err := s.storeCover(ctx, *input.CoverImage)
		if err != nil {
			return nil, err
		}
		cover = &key
	}

	now := s.now().UTC()
	post := &entities.Post{
		AuthorID:   authorID,
		Title:      title,
		Body:       input.Body,
		Slug:       slug.String(),
		CoverImage: cover,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	post.SetPublished(input.IsPublished, now)

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errors.Validation(errors.ErrSlugAlreadyExists, "slug")
		}
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "author_id", authorID, "slug", post.Slug)
	return post, nil
}

// GetPost busca um post não deletado
func (s *PostService) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	post, err := s.posts.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.NotFound(errors.ErrPostNotFound)
	}
	return post, nil
}

// UpdatePost aplica apenas os campos informados.
// O slug nunca é regenerado a partir de um novo título.
func (s *PostService) UpdatePost(ctx context.Context, id string, input UpdatePostInput) (*entities.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.Validation(errors.ErrFieldRequired, "title")
		}
		post.Title = title
	}

	if input.Body != nil {
		if strings.TrimSpace(*input.Body) == "" {
			return nil, errors.Validation(errors.ErrFieldRequired, "body")
		}
		post.Body = *input.Body
	}

	if input.Slug != nil {
		slug, err := valueobjects.NewSlug(*input.Slug)
		if err != nil {
			return nil, err
		}
		if slug.String() != post.Slug {
			if err := s.ensureSlugAvailable(ctx, slug.String(), post.ID); err != nil {
				return nil, err
			}
			post.Slug = slug.String()
		}
	}

	if input.CoverImage != nil {
		key, err := s.storeCover(ctx, *input.CoverImage)
		if err != nil {
			return nil, err
		}
		post.CoverImage = &key
	}

	now := s.now().UTC()
	if input.IsPublished != nil {
		post.SetPublished(*input.IsPublished, now)
	}
	post.UpdatedAt = now

	if err := s.posts.Update(ctx, post); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, errors.Validation(errors.ErrSlugAlreadyExists, "slug")
		case errors.Is(err, repositories.ErrNotFound):
			return nil, errors.NotFound(errors.ErrPostNotFound)
		}
		return nil, err
	}

	s.logger.Info("post updated", "post_id", post.ID)
	return post, nil
}

// DeletePost faz soft delete do post
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if err := s.posts.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errors.NotFound(errors.ErrPostNotFound)
		}
		return err
	}

	s.logger.Info("post deleted", "post_id", id)
	return nil
}

// RestorePost restaura um post deletado; é no-op para posts ativos
func (s *PostService) RestorePost(ctx context.Context, id string) (*entities.Post, error) {
	post, err := s.posts.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.NotFound(errors.ErrPostNotFound)
	}
	if !post.IsDeleted() {
		return post, nil
	}

	// Outro post ativo pode ter assumido o slug enquanto este estava deletado
	if err := s.ensureSlugAvailable(ctx, post.Slug, post.ID); err != nil {
		return nil, err
	}

	if err := s.posts.Restore(ctx, post.ID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, errors.Validation(errors.ErrSlugAlreadyExists, "slug")
		case errors.Is(err, repositories.ErrNotFound):
			return nil, errors.NotFound(errors.ErrPostNotFound)
		}
		return nil, err
	}

	// Recarregar para refletir o updated_at gravado pelo banco
	restored, err := s.posts.FindByID(ctx, post.ID, false)
	if err != nil {
		return nil, err
	}
	if restored == nil {
		return nil, errors.NotFound(errors.ErrPostNotFound)
	}

	s.logger.Info("post restored", "post_id", restored.ID)
	return restored, nil
}

// CoverURL converte a chave da capa em URL pública
func (s *PostService) CoverURL(post *entities.Post) *string {
	if post.CoverImage == nil || *post.CoverImage == "" {
		return nil
	}
	url := s.files.URL(*post.CoverImage)
	return &url
}

// ensureSlugAvailable falha se outro post ativo (diferente de exceptID) usa slug
func (s *PostService) ensureSlugAvailable(ctx context.Context, slug, exceptID string) error {
	existing, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return errors.Validation(errors.ErrSlugAlreadyExists, "slug")
	}
	return nil
}

func (s *PostService) storeCover(ctx context.Context, upload ports.Upload) (string, error) {
	key, err := s.files.Put(ctx, coverNamespace, upload)
	if err != nil {
		s.logger.Error("failed to store cover image", "error", err)
		return "", errors.Storage(err)
	}
	return key, nil
}
