package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-console/internal/common"
	"github.com/noah-isme/toko-console/internal/repo"
	"github.com/noah-isme/toko-console/internal/user"
)

// ErrInvalidCredentials is returned by Login when no user matches.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegistrationInput carries the fields a new customer types in.
type RegistrationInput struct {
	Email    string `validate:"required,email"`
	Nickname string `validate:"required,min=2,max=32"`
	Password string `validate:"required,min=3"`
}

// Service registers customers and resolves logins against the store.
type Service struct {
	store    *repo.Store
	hasher   Hasher
	validate *validator.Validate
}

// NewService wires a Service. A nil hasher falls back to Plain.
func NewService(store *repo.Store, hasher Hasher) *Service {
	if hasher == nil {
		hasher = Plain{}
	}
	return &Service{store: store, hasher: hasher, validate: validator.New()}
}

// Register validates in, hashes the password and stores a new customer with a
// fresh "user<n>" id.
func (s *Service) Register(ctx context.Context, in RegistrationInput) (*user.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Nickname = strings.TrimSpace(in.Nickname)
	if err := s.validate.Struct(in); err != nil {
		return nil, common.NewAppError("invalid_input", "Please provide a valid email, a nickname and a password.", err)
	}

	credential, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	customer, err := user.New(user.Customer, s.store.NextUserID(), in.Email, in.Nickname, credential)
	if err != nil {
		return nil, err
	}
	s.store.AddUser(customer)

	zerolog.Ctx(ctx).Info().Str("user_id", customer.ID).Msg("customer registered")
	return customer, nil
}

// Login resolves login (email or nickname) and password to a user.
func (s *Service) Login(ctx context.Context, login, password string) (*user.User, error) {
	u, ok := s.store.Authenticate(strings.TrimSpace(login), password)
	if !ok {
		zerolog.Ctx(ctx).Debug().Msg("login rejected")
		return nil, ErrInvalidCredentials
	}
	zerolog.Ctx(ctx).Info().Str("user_id", u.ID).Str("role", u.Role.String()).Msg("login")
	return u, nil
}
