package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
	"github.com/rafabene/avantpro-blog/internal/domain/repositories"
	"github.com/rafabene/avantpro-blog/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	model := r.toModel(user)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return translateError(err)
	}

	user.CreatedAt = time.UnixMilli(model.CreatedAt)
	user.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*entities.User, error) {
	return r.findOne(ctx, "google_id = ?", googleID)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	result := getDB(ctx, r.db).
		Model(&UserModel{}).
		Where("id = ? AND deleted_at IS NULL", user.ID).
		Select("name", "email", "password_hash", "google_id", "updated_at").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// findOne busca um usuário não deletado; retorna (nil, nil) quando não existe
func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entities.User, error) {
	var model UserModel

	// Soft delete: ignorar registros deletados
	err := getDB(ctx, r.db).Where(query+" AND deleted_at IS NULL", arg).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Email:        user.Email.String(),
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		GoogleID:     user.GoogleID,
		CreatedAt:    toMillis(user.CreatedAt),
		UpdatedAt:    toMillis(user.UpdatedAt),
		DeletedAt:    toMillisPtr(user.DeletedAt),
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:           model.ID,
		Email:        email,
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		GoogleID:     model.GoogleID,
		CreatedAt:    time.UnixMilli(model.CreatedAt),
		UpdatedAt:    time.UnixMilli(model.UpdatedAt),
		DeletedAt:    fromMillisPtr(model.DeletedAt),
	}, nil
}
