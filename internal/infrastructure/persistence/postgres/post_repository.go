package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
	"github.com/rafabene/avantpro-blog/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	model := r.toModel(post)

	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err)
	}

	post.CreatedAt = time.UnixMilli(model.CreatedAt)
	post.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string, includeDeleted bool) (*entities.Post, error) {
	query := getDB(ctx, r.db).Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}
	return r.first(query)
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	return r.first(getDB(ctx, r.db).Where("slug = ? AND deleted_at IS NULL", slug))
}

func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	model := r.toModel(post)

	result := getDB(ctx, r.db).
		Model(&PostModel{}).
		Where("id = ?", post.ID).
		Select("title", "body", "slug", "cover_image", "is_published", "published_at", "updated_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	post.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *PostRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	// Soft delete: atualizar deleted_at ao invés de deletar
	result := getDB(ctx, r.db).
		Model(&PostModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", at.UnixMilli())
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Restore(ctx context.Context, id string) error {
	result := getDB(ctx, r.db).
		Model(&PostModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, int64, error) {
	var models []*PostModel
	var total int64

	// Soft delete: ignorar registros deletados
	query := getDB(ctx, r.db).
		Model(&PostModel{}).
		Where("deleted_at IS NULL").
		Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(filters.PageSize).
		Offset(filters.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	posts := make([]*entities.Post, 0, len(models))
	for _, model := range models {
		posts = append(posts, r.toEntity(model))
	}
	return posts, total, nil
}

func (r *PostRepository) first(query *gorm.DB) (*entities.Post, error) {
	var model PostModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// Conversores
func (r *PostRepository) toModel(post *entities.Post) *PostModel {
	return &PostModel{
		ID:          post.ID,
		AuthorID:    post.AuthorID,
		Title:       post.Title,
		Body:        post.Body,
		Slug:        post.Slug,
		CoverImage:  post.CoverImage,
		IsPublished: post.IsPublished,
		PublishedAt: toMillisPtr(post.PublishedAt),
		CreatedAt:   toMillis(post.CreatedAt),
		UpdatedAt:   toMillis(post.UpdatedAt),
		DeletedAt:   toMillisPtr(post.DeletedAt),
	}
}

func (r *PostRepository) toEntity(model *PostModel) *entities.Post {
	return &entities.Post{
		ID:          model.ID,
		AuthorID:    model.AuthorID,
		Title:       model.Title,
		Body:        model.Body,
		Slug:        model.Slug,
		CoverImage:  model.CoverImage,
		IsPublished: model.IsPublished,
		PublishedAt: fromMillisPtr(model.PublishedAt),
		CreatedAt:   time.UnixMilli(model.CreatedAt),
		UpdatedAt:   time.UnixMilli(model.UpdatedAt),
		DeletedAt:   fromMillisPtr(model.DeletedAt),
	}
}
