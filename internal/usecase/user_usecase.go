package usecase

import (
	"context"
	"errors"
	"strings"

	"careergps/internal/domain/user"
	"careergps/internal/repository"

	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	FullName        *string
	ExperienceYears *int
	Education       *string
}

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error)
}

type User struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *User {
	return &User{users: users}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	usr.PasswordHash = ""
	return usr, nil
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.FullName = name
	}
	if in.ExperienceYears != nil {
		if *in.ExperienceYears < 0 || *in.ExperienceYears > 80 {
			return user.User{}, ErrInvalidInput
		}
		usr.ExperienceYears = *in.ExperienceYears
	}
	if in.Education != nil {
		usr.Education = strings.TrimSpace(*in.Education)
	}

	if err := u.users.UpdateProfile(ctx, usr); err != nil {
		return user.User{}, ErrInternal
	}

	updated, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	updated.PasswordHash = ""
	return updated, nil
}
