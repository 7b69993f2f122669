package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/entities"
	"storefront/repositories"
	"storefront/session"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("this email is already registered")
)

type UserUseCase struct {
	Users   repositories.UserRepository
	Session session.Store
}

func NewUserUseCase(users repositories.UserRepository, store session.Store) *UserUseCase {
	return &UserUseCase{Users: users, Session: store}
}

// Login returns the user whose email and password match.
func (uc *UserUseCase) Login(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := uc.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if err := uc.Session.SetCurrentUserID(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Register creates the account and signs it in. The insert is conditional, so
// two concurrent registrations of one email cannot both succeed.
func (uc *UserUseCase) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{ID: strings.TrimSpace(email), Name: strings.TrimSpace(name), PasswordHash: string(hash)}
	created, err := uc.Users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrEmailTaken
	}

	if err := uc.Session.SetCurrentUserID(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

func (uc *UserUseCase) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return uc.Users.GetByEmail(ctx, strings.TrimSpace(email))
}

// CurrentUserID returns the signed-in user id, or "" when nobody is signed in.
func (uc *UserUseCase) CurrentUserID(ctx context.Context) (string, error) {
	return uc.Session.CurrentUserID(ctx)
}

func (uc *UserUseCase) Logout(ctx context.Context) error {
	return uc.Session.Clear(ctx)
}
