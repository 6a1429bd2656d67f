package auth

import (
	"context"
	"errors"
	"testing"

	"careergps/internal/domain/user"

	"github.com/google/uuid"
)

type memUserRepo struct {
	byID    map[uuid.UUID]user.User
	byEmail map[string]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[uuid.UUID]user.User{}, byEmail: map[string]user.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u user.User) error {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, u user.User) error {
	r.byID[u.ID] = u
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newMemUserRepo())

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Jane@Example.COM ",
		Password: "supersecret",
		FullName: "Jane Doe",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatal("password hash must not leak out of the service")
	}

	logged, err := svc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatal(err)
	}
	if logged.ID != u.ID {
		t.Fatalf("login returned different user: %v vs %v", logged.ID, u.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMemUserRepo())

	cases := []RegisterInput{
		{Email: "", Password: "supersecret", FullName: "Jane"},
		{Email: "jane@example.com", Password: "short", FullName: "Jane"},
		{Email: "jane@example.com", Password: "supersecret", FullName: "  "},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newMemUserRepo())

	in := RegisterInput{Email: "jane@example.com", Password: "supersecret", FullName: "Jane"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(newMemUserRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "jane@example.com", Password: "supersecret", FullName: "Jane"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "supersecret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email should read as bad credentials, got %v", err)
	}
}
