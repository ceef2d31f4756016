package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ZHANGLudovic/Web-Project/internal/domain"
	userRepo "github.com/ZHANGLudovic/Web-Project/internal/infra/storage/user"
	"github.com/ZHANGLudovic/Web-Project/pkg/ptr"
)

type fakeUserRepo struct {
	users     map[int64]*domain.User
	nextID    int64
	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	stored := *u
	stored.ID = f.nextID
	f.users[stored.ID] = &stored
	f.nextID++
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: GetByID - id=%d", userRepo.ErrUserNotFound, id)
	}
	return u, nil
}

func (f *fakeUserRepo) Update(_ context.Context, id int64, username, email *string) (*domain.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: Update - id=%d", userRepo.ErrUserNotFound, id)
	}
	if username != nil {
		u.Username = *username
	}
	if email != nil {
		u.Email = *email
	}
	return u, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestRegister(t *testing.T) {
	t.Run("успешная регистрация", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Register(context.Background(), &RegisterRequest{
			Email:    "  Ivan@Example.COM ",
			Username: "ivan",
			Password: "secret123",
		})
		require.NoError(t, err)

		// Email нормализован
		assert.Equal(t, "ivan@example.com", resp.Email)
		assert.Equal(t, "ivan", resp.Username)
		assert.Equal(t, string(domain.RoleUser), resp.Role)

		// В хранилище лежит bcrypt-хеш, а не пароль
		stored := repo.users[resp.ID]
		assert.NotEqual(t, "secret123", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
	})

	t.Run("дубликат email", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.createErr = fmt.Errorf("%w: Create - duplicate", userRepo.ErrDuplicateUser)
		svc := NewService(repo, nopLogger{})

		_, err := svc.Register(context.Background(), &RegisterRequest{
			Email:    "ivan@example.com",
			Username: "ivan",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("валидация", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), nopLogger{})

		cases := []struct {
			name string
			req  *RegisterRequest
		}{
			{"email без @", &RegisterRequest{Email: "ivan", Username: "ivan", Password: "secret123"}},
			{"пустой email", &RegisterRequest{Email: "   ", Username: "ivan", Password: "secret123"}},
			{"короткое имя", &RegisterRequest{Email: "a@b.ru", Username: "iv", Password: "secret123"}},
			{"короткий пароль", &RegisterRequest{Email: "a@b.ru", Username: "ivan", Password: "12345"}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(context.Background(), tc.req)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})
}

func TestUpdate(t *testing.T) {
	setup := func() (*Service, *fakeUserRepo, *domain.User) {
		repo := newFakeUserRepo()
		owner := &domain.User{ID: 1, Email: "ivan@example.com", Username: "ivan", Role: domain.RoleUser}
		repo.users[1] = owner
		repo.nextID = 2
		return NewService(repo, nopLogger{}), repo, owner
	}

	t.Run("владелец меняет свой профиль", func(t *testing.T) {
		svc, _, owner := setup()

		resp, err := svc.Update(context.Background(), owner, 1, &UpdateUserRequest{
			Username: ptr.Ptr("ivan_petrov"),
		})
		require.NoError(t, err)
		assert.Equal(t, "ivan_petrov", resp.Username)
	})

	t.Run("чужой профиль запрещен", func(t *testing.T) {
		svc, _, _ := setup()
		stranger := &domain.User{ID: 2, Role: domain.RoleUser}

		_, err := svc.Update(context.Background(), stranger, 1, &UpdateUserRequest{
			Username: ptr.Ptr("hacker"),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("администратор меняет любой профиль", func(t *testing.T) {
		svc, _, _ := setup()
		admin := &domain.User{ID: 99, Role: domain.RoleAdmin}

		resp, err := svc.Update(context.Background(), admin, 1, &UpdateUserRequest{
			Email: ptr.Ptr("new@example.com"),
		})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", resp.Email)
	})

	t.Run("пустое обновление", func(t *testing.T) {
		svc, _, owner := setup()

		_, err := svc.Update(context.Background(), owner, 1, &UpdateUserRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
