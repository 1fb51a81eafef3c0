package repositories

import (
	"context"
	"time"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
)

// PostRepository define a interface para persistência de posts.
// Métodos Find* retornam (nil, nil) quando o registro não existe.
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	// FindByID ignora posts deletados, salvo quando includeDeleted é true
	FindByID(ctx context.Context, id string, includeDeleted bool) (*entities.Post, error)
	// FindBySlug considera apenas posts não deletados
	FindBySlug(ctx context.Context, slug string) (*entities.Post, error)
	Update(ctx context.Context, post *entities.Post) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	Restore(ctx context.Context, id string) error
	List(ctx context.Context, filters PostFilters) ([]*entities.Post, int64, error)
}

// PostFilters contém filtros para listagem de posts
type PostFilters struct {
	Page     int // Página (começa em 1)
	PageSize int // Itens por página
}

// Offset calcula o deslocamento da página
func (f PostFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}
