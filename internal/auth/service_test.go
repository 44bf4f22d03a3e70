package auth_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prasetya/wiki-management/internal"
	"github.com/prasetya/wiki-management/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	usersByEmail map[string]*auth.User
	usersByID    map[string]*auth.User
	lastLogins   map[string]time.Time
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByEmail: make(map[string]*auth.User),
		usersByID:    make(map[string]*auth.User),
		lastLogins:   make(map[string]time.Time),
	}
}

func (m *mockUserRepository) GetByEmail(email string) (*auth.User, error) {
	return m.usersByEmail[email], nil
}

func (m *mockUserRepository) GetUserWithRoles(userID string) (*auth.User, error) {
	return m.usersByID[userID], nil
}

func (m *mockUserRepository) UpdateLastLogin(userID string, at time.Time) error {
	m.lastLogins[userID] = at
	return nil
}

func (m *mockUserRepository) addUser(id, email, password string, roles ...string) {
	hash, err := auth.HashPassword(password, 10)
	Expect(err).NotTo(HaveOccurred())
	u := &auth.User{ID: id, Email: email, PasswordHash: &hash, Roles: roles}
	m.usersByEmail[email] = u
	m.usersByID[id] = u
}

var _ = Describe("AuthService", func() {
	var (
		repo     *mockUserRepository
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		repo.addUser("user-1", "alice@example.com", "s3cret-pass", "member")
		tokenGen = auth.NewJWTTokenGenerator(
			"access-secret-access-secret-access-secret",
			"refresh-secret-refresh-secret-refresh-secret",
			15*time.Minute,
			24*time.Hour,
		)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(repo, tokenGen, logger)
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
			Expect(repo.lastLogins).To(HaveKey("user-1"))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "wrong"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("rejects unknown emails with the same error", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "nobody@example.com", Password: "s3cret-pass"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("rejects accounts without a password hash", func() {
			repo.usersByEmail["svc@example.com"] = &auth.User{ID: "svc-1", Email: "svc@example.com"}
			_, err := service.Authenticate(auth.LoginDTO{Email: "svc@example.com", Password: "anything"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})
	})

	Describe("token validation", func() {
		It("round-trips claims through the access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("user-1"))
			Expect(claims.Email).To(Equal("alice@example.com"))
		})

		It("rejects a refresh token used as an access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(tokens.RefreshToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("rejects expired tokens distinctly", func() {
			shortGen := auth.NewJWTTokenGenerator(
				"access-secret-access-secret-access-secret",
				"refresh-secret-refresh-secret-refresh-secret",
				-1*time.Minute,
				24*time.Hour,
			)
			token, err := shortGen.GenerateAccessToken("user-1", "alice@example.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = shortGen.ValidateToken(token)
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})
	})

	Describe("RefreshTokens", func() {
		It("rotates the pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())

			rotated, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(rotated.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("user-1"))
		})

		It("rejects an access token passed as a refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.RefreshTokens(tokens.AccessToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("GetUserWithRoles", func() {
		It("returns the user with role slugs", func() {
			user, err := service.GetUserWithRoles("user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Roles).To(ConsistOf("member"))
		})

		It("returns not found for unknown ids", func() {
			_, err := service.GetUserWithRoles("ghost")
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})
})
