package services_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	domainerrors "github.com/rafabene/avantpro-blog/internal/domain/errors"
	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	"github.com/rafabene/avantpro-blog/internal/domain/ports/mocks"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/logging"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/security"
	"github.com/rafabene/avantpro-blog/internal/services"
)

var _ = Describe("AuthService", func() {
	var (
		ctx      context.Context
		users    *fakeUserRepository
		uow      *fakeUnitOfWork
		oauth    *mocks.MockOAuthProvider
		denylist *security.MemoryDenylist
		issuer   *security.JWTIssuer
		service  *services.AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = newFakeUserRepository()
		uow = &fakeUnitOfWork{}
		oauth = mocks.NewMockOAuthProvider(gomock.NewController(GinkgoT()))
		denylist = security.NewMemoryDenylist(nil)
		issuer = security.NewJWTIssuer("test-secret", "avantpro-blog", time.Hour, nil)

		service = services.NewAuthService(
			users,
			uow,
			security.NewBcryptHasher(bcrypt.MinCost),
			issuer,
			denylist,
			oauth,
			logging.NewNopLogger(),
		)
	})

	register := func(email, password string) {
		_, err := service.Register(ctx, services.RegisterInput{Name: "Jane", Email: email, Password: password})
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("Register", func() {
		It("persiste o usuário com senha em hash e email normalizado", func() {
			user, err := service.Register(ctx, services.RegisterInput{
				Name:     " Jane ",
				Email:    " Jane@Example.COM ",
				Password: "secret123",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeEmpty())
			Expect(user.Name).To(Equal("Jane"))
			Expect(user.Email.String()).To(Equal("jane@example.com"))
			Expect(user.PasswordHash).NotTo(Equal("secret123"))
			Expect(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123"))).To(Succeed())
		})

		It("rejeita email já registrado com erro de validação", func() {
			register("jane@example.com", "secret123")

			_, err := service.Register(ctx, services.RegisterInput{Name: "Other", Email: "JANE@example.com", Password: "other123"})

			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidation))
			Expect(errors.Is(err, domainerrors.ErrEmailAlreadyExists)).To(BeTrue())
			Expect(users.count()).To(Equal(1))
		})

		It("rejeita email malformado", func() {
			_, err := service.Register(ctx, services.RegisterInput{Name: "Jane", Email: "not-an-email", Password: "secret123"})

			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidation))
			Expect(errors.Is(err, domainerrors.ErrInvalidEmail)).To(BeTrue())
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			register("jane@example.com", "secret123")
		})

		It("emite um token para credenciais corretas", func() {
			token, user, err := service.Login(ctx, "jane@example.com", "secret123")

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email.String()).To(Equal("jane@example.com"))

			parsed, err := issuer.Parse(token.Value)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed.UserID).To(Equal(user.ID))
		})

		It("devolve o mesmo erro para senha incorreta e email desconhecido", func() {
			_, _, wrongPassword := service.Login(ctx, "jane@example.com", "wrong")
			_, _, unknownEmail := service.Login(ctx, "ghost@example.com", "secret123")

			Expect(domainerrors.KindOf(wrongPassword)).To(Equal(domainerrors.KindAuthentication))
			Expect(wrongPassword).To(Equal(unknownEmail))
			Expect(errors.Is(unknownEmail, domainerrors.ErrInvalidCredentials)).To(BeTrue())
		})

		It("trata email malformado como credencial inválida", func() {
			_, _, err := service.Login(ctx, "garbage", "secret123")

			Expect(errors.Is(err, domainerrors.ErrInvalidCredentials)).To(BeTrue())
		})
	})

	Describe("Authenticate e Logout", func() {
		var raw string

		BeforeEach(func() {
			register("jane@example.com", "secret123")
			token, _, err := service.Login(ctx, "jane@example.com", "secret123")
			Expect(err).NotTo(HaveOccurred())
			raw = token.Value
		})

		It("aceita um token válido", func() {
			token, err := service.Authenticate(ctx, raw)

			Expect(err).NotTo(HaveOccurred())
			Expect(token.UserID).NotTo(BeEmpty())
		})

		It("rejeita token vazio ou malformado", func() {
			for _, bad := range []string{"", "not.a.jwt"} {
				_, err := service.Authenticate(ctx, bad)
				Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindAuthentication))
			}
		})

		It("rejeita o token após logout", func() {
			Expect(service.Logout(ctx, raw)).To(Succeed())

			_, err := service.Authenticate(ctx, raw)
			Expect(errors.Is(err, domainerrors.ErrUnauthorized)).To(BeTrue())
		})
	})

	Describe("LoginWithOAuthToken", func() {
		identity := &ports.OAuthIdentity{ID: "google-123", Name: "Jane G", Email: "Jane@Example.com"}

		It("cria um usuário novo vinculado ao Google", func() {
			oauth.EXPECT().FetchIdentity(gomock.Any(), "provider-token").Return(identity, nil)

			token, user, err := service.LoginWithOAuthToken(ctx, "provider-token")

			Expect(err).NotTo(HaveOccurred())
			Expect(token.Value).NotTo(BeEmpty())
			Expect(user.HasGoogleAccount()).To(BeTrue())
			Expect(*user.GoogleID).To(Equal("google-123"))
			Expect(user.Email.String()).To(Equal("jane@example.com"))
			Expect(user.PasswordHash).NotTo(BeEmpty())
			Expect(uow.transactions).To(Equal(1))
			Expect(users.count()).To(Equal(1))
		})

		It("vincula uma conta existente com o mesmo email", func() {
			register("jane@example.com", "secret123")
			oauth.EXPECT().FetchIdentity(gomock.Any(), "provider-token").Return(identity, nil)

			_, user, err := service.LoginWithOAuthToken(ctx, "provider-token")

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("Jane"))
			Expect(user.HasGoogleAccount()).To(BeTrue())
			Expect(users.count()).To(Equal(1))

			// A senha original continua válida
			_, _, err = service.Login(ctx, "jane@example.com", "secret123")
			Expect(err).NotTo(HaveOccurred())
		})

		It("reutiliza o usuário em logins seguintes", func() {
			oauth.EXPECT().FetchIdentity(gomock.Any(), gomock.Any()).Return(identity, nil).Times(2)

			_, first, err := service.LoginWithOAuthToken(ctx, "t1")
			Expect(err).NotTo(HaveOccurred())
			_, second, err := service.LoginWithOAuthToken(ctx, "t2")
			Expect(err).NotTo(HaveOccurred())

			Expect(second.ID).To(Equal(first.ID))
			Expect(users.count()).To(Equal(1))
		})

		It("não revincula conta já ligada a outra identidade Google", func() {
			oauth.EXPECT().FetchIdentity(gomock.Any(), "t1").Return(&ports.OAuthIdentity{ID: "google-A", Email: "jane@example.com"}, nil)
			oauth.EXPECT().FetchIdentity(gomock.Any(), "t2").Return(&ports.OAuthIdentity{ID: "google-B", Email: "jane@example.com"}, nil)

			_, owner, err := service.LoginWithOAuthToken(ctx, "t1")
			Expect(err).NotTo(HaveOccurred())

			_, intruder, err := service.LoginWithOAuthToken(ctx, "t2")

			Expect(intruder).To(BeNil())
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindAuthentication))
			Expect(errors.Is(err, domainerrors.ErrInvalidOAuthToken)).To(BeTrue())

			stored, err := users.FindByID(ctx, owner.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored.GoogleID).To(Equal("google-A"))
			Expect(users.count()).To(Equal(1))
		})

		It("rejeita token recusado pelo provedor", func() {
			oauth.EXPECT().FetchIdentity(gomock.Any(), "bad").Return(nil, errors.New("401 from provider"))

			_, _, err := service.LoginWithOAuthToken(ctx, "bad")

			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindAuthentication))
			Expect(errors.Is(err, domainerrors.ErrInvalidOAuthToken)).To(BeTrue())
			Expect(uow.transactions).To(BeZero())
		})

		It("rejeita perfil sem email", func() {
			oauth.EXPECT().FetchIdentity(gomock.Any(), "t").Return(&ports.OAuthIdentity{ID: "g-1"}, nil)

			_, _, err := service.LoginWithOAuthToken(ctx, "t")

			Expect(errors.Is(err, domainerrors.ErrInvalidOAuthToken)).To(BeTrue())
			Expect(users.count()).To(BeZero())
		})
	})

	Describe("CurrentUser", func() {
		It("devolve NotFound para id desconhecido", func() {
			_, err := service.CurrentUser(ctx, "missing")

			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindNotFound))
		})

		It("devolve o usuário registrado", func() {
			created, err := service.Register(ctx, services.RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret123"})
			Expect(err).NotTo(HaveOccurred())

			user, err := service.CurrentUser(ctx, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(created.ID))
		})
	})
})
