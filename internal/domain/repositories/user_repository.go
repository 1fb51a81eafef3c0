package repositories

import (
	"context"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Métodos Find* retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}
