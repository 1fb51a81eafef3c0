package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
	"github.com/rafabene/avantpro-blog/internal/domain/repositories"
)

// fakeUserRepository implementa repositories.UserRepository em memória
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]entities.User
	calls int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]entities.User{}}
}

func (r *fakeUserRepository) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
		if user.GoogleID != nil && u.GoogleID != nil && *u.GoogleID == *user.GoogleID {
			return repositories.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	return r.find(func(u entities.User) bool { return u.ID == id })
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	return r.find(func(u entities.User) bool { return u.Email.String() == email })
}

func (r *fakeUserRepository) FindByGoogleID(_ context.Context, googleID string) (*entities.User, error) {
	return r.find(func(u entities.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (r *fakeUserRepository) Update(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepository) find(match func(entities.User) bool) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	for _, u := range r.users {
		if u.DeletedAt == nil && match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// fakePostRepository implementa repositories.PostRepository em memória,
// com o mesmo índice único parcial de slug do banco
type fakePostRepository struct {
	mu    sync.Mutex
	posts map[string]entities.Post
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: map[string]entities.Post{}}
}

func (r *fakePostRepository) Create(_ context.Context, post *entities.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTakenLocked(post.Slug, "") {
		return repositories.ErrDuplicate
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	r.posts[post.ID] = *post
	return nil
}

func (r *fakePostRepository) FindByID(_ context.Context, id string, includeDeleted bool) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok || (!includeDeleted && p.DeletedAt != nil) {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePostRepository) FindBySlug(_ context.Context, slug string) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.DeletedAt == nil && p.Slug == slug {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepository) Update(_ context.Context, post *entities.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.posts[post.ID]
	if !ok || current.DeletedAt != nil {
		return repositories.ErrNotFound
	}
	if r.slugTakenLocked(post.Slug, post.ID) {
		return repositories.ErrDuplicate
	}
	current.Title = post.Title
	current.Body = post.Body
	current.Slug = post.Slug
	current.CoverImage = post.CoverImage
	current.IsPublished = post.IsPublished
	current.PublishedAt = post.PublishedAt
	current.UpdatedAt = post.UpdatedAt
	r.posts[post.ID] = current
	return nil
}

func (r *fakePostRepository) SoftDelete(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok || p.DeletedAt != nil {
		return repositories.ErrNotFound
	}
	p.DeletedAt = &at
	r.posts[id] = p
	return nil
}

func (r *fakePostRepository) Restore(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok || p.DeletedAt == nil {
		return repositories.ErrNotFound
	}
	if r.slugTakenLocked(p.Slug, id) {
		return repositories.ErrDuplicate
	}
	// Como o autoUpdateTime do GORM
	p.DeletedAt = nil
	p.UpdatedAt = time.Now()
	r.posts[id] = p
	return nil
}

func (r *fakePostRepository) List(_ context.Context, filters repositories.PostFilters) ([]*entities.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := make([]entities.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if p.DeletedAt == nil {
			live = append(live, p)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		if !live[i].CreatedAt.Equal(live[j].CreatedAt) {
			return live[i].CreatedAt.After(live[j].CreatedAt)
		}
		return strings.Compare(live[i].ID, live[j].ID) > 0
	})

	total := int64(len(live))
	start := filters.Offset()
	if start > len(live) {
		start = len(live)
	}
	end := start + filters.PageSize
	if end > len(live) {
		end = len(live)
	}

	page := make([]*entities.Post, 0, end-start)
	for i := start; i < end; i++ {
		p := live[i]
		page = append(page, &p)
	}
	return page, total, nil
}

func (r *fakePostRepository) slugTakenLocked(slug, exceptID string) bool {
	for id, p := range r.posts {
		if id != exceptID && p.DeletedAt == nil && p.Slug == slug {
			return true
		}
	}
	return false
}

// fakeUnitOfWork executa fn diretamente, registrando o uso
type fakeUnitOfWork struct {
	transactions int
}

func (u *fakeUnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	u.transactions++
	return fn(ctx)
}

// fakeClock é um relógio controlado pelos testes
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
