package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Input son los campos editables de un User.
type Input struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Address string `json:"address" validate:"max=1024"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []User{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, fmt.Errorf("%w: email required", ErrInvalidInput)
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) Create(ctx context.Context, in Input) (User, error) {
	in, err := clean(in)
	if err != nil {
		return User{}, err
	}
	return s.repo.Create(ctx, User{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
	})
}

// Update pisa name/email/address. El id no cambia.
func (s *Service) Update(ctx context.Context, id int64, in Input) (User, error) {
	if id <= 0 {
		return User{}, ErrNotFound
	}
	in, err := clean(in)
	if err != nil {
		return User{}, err
	}
	return s.repo.Update(ctx, User{
		ID:      id,
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func clean(in Input) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)

	if err := validate.Struct(in); err != nil {
		return Input{}, fmt.Errorf("%w: %s", ErrInvalidInput, describe(err))
	}
	return in, nil
}

// describe arma un mensaje corto tipo "email: email, name: required".
func describe(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, strings.ToLower(fe.Field())+": "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
