package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrInvalidInput = errors.New("invalid input")
)

// Repository es el puerto de persistencia.
//
// Create y Update deben chequear la unicidad del email y escribir de forma
// atómica: dos escrituras concurrentes con el mismo email no pueden pasar ambas.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// Create asigna el id y devuelve el registro guardado.
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) (User, error)

	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
