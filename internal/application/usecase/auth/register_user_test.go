package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// fakePasswordService prefixes the plain text instead of hashing so
// verification stays trivial in tests.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, _ string) (string, error) {
	return "token-" + userID.String(), nil
}

func (fakeTokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})

	out, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "sam@example.com",
		Name:     "Sam",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.AccessToken == "" {
		t.Error("AccessToken is empty")
	}
	if out.User.PasswordHash != "hashed:correct-horse" {
		t.Errorf("PasswordHash = %q, plain password must not be stored", out.User.PasswordHash)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "sam@example.com",
			Name:     "Other Sam",
			Password: "another-pass",
		})
		if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			t.Errorf("Execute() error = %v, want ErrEmailAlreadyExists", err)
		}
	})
}

func TestRegisterUserValidation(t *testing.T) {
	uc := NewRegisterUserUseCase(newFakeUserRepo(), fakePasswordService{}, fakeTokenService{})

	tests := []struct {
		name    string
		input   RegisterUserInput
		wantErr error
	}{
		{
			name:    "invalid email",
			input:   RegisterUserInput{Email: "not-an-email", Name: "X", Password: "long-enough"},
			wantErr: domainerror.ErrInvalidEmail,
		},
		{
			name:    "weak password",
			input:   RegisterUserInput{Email: "a@b.io", Name: "X", Password: "short"},
			wantErr: domainerror.ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	registerUC := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})
	loginUC := NewLoginUserUseCase(repo, fakePasswordService{}, fakeTokenService{})

	if _, err := registerUC.Execute(context.Background(), RegisterUserInput{
		Email:    "kim@example.com",
		Name:     "Kim",
		Password: "correct-horse",
	}); err != nil {
		t.Fatal(err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		out, err := loginUC.Execute(context.Background(), LoginUserInput{
			Email:    "kim@example.com",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.AccessToken == "" {
			t.Error("AccessToken is empty")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := loginUC.Execute(context.Background(), LoginUserInput{
			Email:    "kim@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("Execute() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email yields the same error", func(t *testing.T) {
		_, err := loginUC.Execute(context.Background(), LoginUserInput{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			t.Errorf("Execute() error = %v, want ErrInvalidCredentials", err)
		}
	})
}
