package services_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	domainerrors "github.com/rafabene/avantpro-blog/internal/domain/errors"
	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	"github.com/rafabene/avantpro-blog/internal/domain/ports/mocks"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/logging"
	"github.com/rafabene/avantpro-blog/internal/services"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("PostService", func() {
	const authorID = "author-1"

	var (
		ctx     context.Context
		posts   *fakePostRepository
		files   *mocks.MockFileStore
		clock   *fakeClock
		service *services.PostService
	)

	BeforeEach(func() {
		ctx = context.Background()
		posts = newFakePostRepository()
		files = mocks.NewMockFileStore(gomock.NewController(GinkgoT()))
		clock = newFakeClock()
		service = services.NewPostService(posts, files, logging.NewNopLogger(), clock.Now)
	})

	create := func(title string) string {
		post, err := service.CreatePost(ctx, authorID, services.CreatePostInput{Title: title, Body: "body"})
		Expect(err).NotTo(HaveOccurred())
		clock.Advance(time.Second)
		return post.ID
	}

	Describe("CreatePost", func() {
		It("deriva o slug do título", func() {
			post, err := service.CreatePost(ctx, authorID, services.CreatePostInput{
				Title: "My Awesome Post Title",
				Body:  "Hello",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(post.Slug).To(Equal("my-awesome-post-title"))
			Expect(post.AuthorID).To(Equal(authorID))
			Expect(post.CoverImage).To(BeNil())
			Expect(post.IsPublished).To(BeFalse())
			Expect(post.PublishedAt).To(BeNil())
			Expect(post.DeletedAt).To(BeNil())
		})

		It("rejeita o mesmo título duas vezes sem slug distinto", func() {
			create("Same Title")

			_, err := service.CreatePost(ctx, authorID, services.CreatePostInput{Title: "Same Title", Body: "b"})
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidation))
			Expect(errors.Is(err, domainerrors.ErrSlugAlreadyExists)).To(BeTrue())

			post, err := service.CreatePost(ctx, authorID, services.CreatePostInput{
				Title: "Same Title",
				Body:  "b",
				Slug:  ptr("Same Title Again"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(post.Slug).To(Equal("same-title-again"))
		})

		It("rejeita slug que normaliza para vazio", func() {
			_, err := service.CreatePost(ctx, authorID, services.CreatePostInput{Title: "!!!", Body: "b"})

			Expect(errors.Is(err, domainerrors.ErrInvalidSlug)).To(BeTrue())
		})

		It("exige título e corpo", func() {
			_, err := service.CreatePost(ctx, authorID, services.CreatePostInput{Title: " ", Body: "b"})
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidation))

			_, err = service.CreatePost(ctx, authorID, services.CreatePostInput{Title: "t", Body: ""})
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidation))
		})

		It("preenche published_at ao criar publicado", func() {
			post, err := service.CreatePost(ctx, authorID, services.CreatePostInput{Title: "t", Body: "b", IsPublished: true})

			Expect(err).NotTo(HaveOccurred())
			Expect(post.PublishedAt).NotTo(BeNil())
			Expect(*post.PublishedAt).To(Equal(clock.Now()))
		})

		It("grava a capa no namespace posts", func() {
			upload := ports.Upload{Filename: "cover.png", ContentType: "image/png", Size: 4, Content: strings.NewReader("png!")}
			files.EXPECT().Put(gomock.Any(), "posts", upload).Return("posts/abc.png", nil)
			files.EXPECT().URL("posts/abc.png").Return("http://localhost:8080/storage/posts/abc.png")

			post, err := service.CreatePost(ctx, authorID, services.CreatePostInput{Title: "t", Body: "b", CoverImage: &upload})

			Expect(err).NotTo(HaveOccurred())
			Expect(*post.CoverImage).To(Equal("posts/abc.png"))

			url := service.CoverURL(post)
			Expect(url).NotTo(BeNil())
			Expect(*url).To(HavePrefix("http://"))
			Expect(*url).NotTo(Equal(*post.CoverImage))
		})

		It("não persiste o post quando o file store falha", func() {
			upload := ports.Upload{Filename: "cover.png", Content: strings.NewReader("x")}
			files.EXPECT().Put(gomock.Any(), "posts", gomock.Any()).Return("", errors.New("disk full"))

			_, err := service.CreatePost(ctx, authorID, services.CreatePostInput{Title: "t", Body: "b", CoverImage: &upload})

			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindStorage))
			page, err := service.ListPosts(ctx, 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeZero())
		})

		It("não chama o file store quando o slug colide", func() {
			create("Taken")
			upload := ports.Upload{Filename: "cover.png", Content: strings.NewReader("x")}

			_, err := service.CreatePost(ctx, authorID, services.CreatePostInput{Title: "Taken", Body: "b", CoverImage: &upload})

			Expect(errors.Is(err, domainerrors.ErrSlugAlreadyExists)).To(BeTrue())
		})
	})

	Describe("CoverURL", func() {
		It("é nil sem capa", func() {
			id := create("No Cover")
			post, err := service.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.CoverURL(post)).To(BeNil())
		})
	})

	Describe("ListPosts", func() {
		It("lista os mais recentes primeiro com metadados de paginação", func() {
			first := create("First")
			create("Second")
			third := create("Third")

			page, err := service.ListPosts(ctx, 1, 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeEquivalentTo(3))
			Expect(page.LastPage).To(Equal(2))
			Expect(page.Items).To(HaveLen(2))
			Expect(page.Items[0].ID).To(Equal(third))

			page, err = service.ListPosts(ctx, 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].ID).To(Equal(first))
		})

		It("usa tamanho padrão e limita o máximo", func() {
			page, err := service.ListPosts(ctx, 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.PageSize).To(Equal(services.DefaultPageSize))
			Expect(page.LastPage).To(Equal(1))

			page, err = service.ListPosts(ctx, 1, 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.PageSize).To(Equal(services.MaxPageSize))
		})

		It("rejeita página ou tamanho não positivos", func() {
			_, err := service.ListPosts(ctx, 0, 10)
			Expect(errors.Is(err, domainerrors.ErrInvalidPagination)).To(BeTrue())

			_, err = service.ListPosts(ctx, 1, -1)
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidation))
		})
	})

	Describe("UpdatePost", func() {
		It("mantém o slug quando apenas o título muda", func() {
			id := create("Original Title")

			post, err := service.UpdatePost(ctx, id, services.UpdatePostInput{Title: ptr("Brand New Title")})

			Expect(err).NotTo(HaveOccurred())
			Expect(post.Title).To(Equal("Brand New Title"))
			Expect(post.Slug).To(Equal("original-title"))
		})

		It("normaliza e verifica colisão de um novo slug", func() {
			create("Taken")
			id := create("Mine")

			_, err := service.UpdatePost(ctx, id, services.UpdatePostInput{Slug: ptr("TAKEN")})
			Expect(errors.Is(err, domainerrors.ErrSlugAlreadyExists)).To(BeTrue())

			post, err := service.UpdatePost(ctx, id, services.UpdatePostInput{Slug: ptr("Mine")})
			Expect(err).NotTo(HaveOccurred())
			Expect(post.Slug).To(Equal("mine"))
		})

		It("mantém published_at coerente com is_published", func() {
			id := create("Draft")

			post, err := service.UpdatePost(ctx, id, services.UpdatePostInput{IsPublished: ptr(true)})
			Expect(err).NotTo(HaveOccurred())
			Expect(post.PublishedAt).NotTo(BeNil())

			post, err = service.UpdatePost(ctx, id, services.UpdatePostInput{IsPublished: ptr(false)})
			Expect(err).NotTo(HaveOccurred())
			Expect(post.PublishedAt).To(BeNil())
		})

		It("substitui a capa", func() {
			id := create("Cover")
			upload := ports.Upload{Filename: "new.jpg", Content: strings.NewReader("jpg")}
			files.EXPECT().Put(gomock.Any(), "posts", gomock.Any()).Return("posts/new.jpg", nil)

			post, err := service.UpdatePost(ctx, id, services.UpdatePostInput{CoverImage: &upload})

			Expect(err).NotTo(HaveOccurred())
			Expect(*post.CoverImage).To(Equal("posts/new.jpg"))
		})

		It("devolve NotFound para post deletado", func() {
			id := create("Gone")
			Expect(service.DeletePost(ctx, id)).To(Succeed())

			_, err := service.UpdatePost(ctx, id, services.UpdatePostInput{Title: ptr("x")})
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindNotFound))
		})
	})

	Describe("DeletePost e RestorePost", func() {
		It("oculta o post deletado e o restaura intacto", func() {
			id := create("Lifecycle")
			original, err := service.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeletePost(ctx, id)).To(Succeed())

			_, err = service.GetPost(ctx, id)
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindNotFound))
			page, err := service.ListPosts(ctx, 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())

			restored, err := service.RestorePost(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.DeletedAt).To(BeNil())
			Expect(restored.AuthorID).To(Equal(original.AuthorID))
			Expect(restored.CreatedAt).To(Equal(original.CreatedAt))

			stored, err := service.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.UpdatedAt).To(Equal(stored.UpdatedAt))
			Expect(restored.UpdatedAt).NotTo(Equal(original.UpdatedAt))

			page, err = service.ListPosts(ctx, 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
		})

		It("falha ao deletar duas vezes", func() {
			id := create("Twice")
			Expect(service.DeletePost(ctx, id)).To(Succeed())

			err := service.DeletePost(ctx, id)
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindNotFound))
		})

		It("restaurar um post ativo é no-op", func() {
			id := create("Alive")

			post, err := service.RestorePost(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(post.ID).To(Equal(id))
		})

		It("devolve NotFound para id inexistente", func() {
			_, err := service.RestorePost(ctx, "missing")
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindNotFound))
		})

		It("permite reutilizar o slug de um post deletado e impede restaurá-lo", func() {
			id := create("Reused")
			Expect(service.DeletePost(ctx, id)).To(Succeed())
			create("Reused")

			_, err := service.RestorePost(ctx, id)
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidation))
			Expect(errors.Is(err, domainerrors.ErrSlugAlreadyExists)).To(BeTrue())
		})
	})
})
