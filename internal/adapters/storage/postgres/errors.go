package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"dog-users-api/internal/domain/users"
)

const uniqueViolationCode = "23505"

// mapError traduce errores del driver a errores del dominio users.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return users.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w (%s)", users.ErrEmailTaken, pgErr.ConstraintName)
	}
	return err
}
