package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string  `gorm:"type:varchar(36);primaryKey"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string  `gorm:"type:varchar(255);not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	GoogleID     *string `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt    int64   `gorm:"autoCreateTime:milli;index"`
	UpdatedAt    int64   `gorm:"autoUpdateTime:milli"`
	DeletedAt    *int64  `gorm:"index"` // Soft delete
}

func (UserModel) TableName() string {
	return "users"
}

// PostModel é o model GORM para posts.
// O slug é único apenas entre posts não deletados (índice parcial).
type PostModel struct {
	ID          string     `gorm:"type:varchar(36);primaryKey"`
	AuthorID    string     `gorm:"type:varchar(36);not null;index"`
	Author      *UserModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Body        string     `gorm:"type:text;not null"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_posts_slug_active,where:deleted_at IS NULL"`
	CoverImage  *string    `gorm:"type:varchar(500)"`
	IsPublished bool       `gorm:"not null;default:false"`
	PublishedAt *int64
	CreatedAt   int64  `gorm:"autoCreateTime:milli;index"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli"`
	DeletedAt   *int64 `gorm:"index"` // Soft delete
}

func (PostModel) TableName() string {
	return "posts"
}
