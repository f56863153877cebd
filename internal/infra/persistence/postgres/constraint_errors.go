package postgres

import (
	domainerrors "birdy/internal/domain/errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Constraint names declared by the migrations.
const (
	constraintUserTag   = "users_unique_tag_key"
	constraintUserEmail = "users_email_lower_key"
)

// pgErrorOf extracts the driver error, if any, from err.
func pgErrorOf(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	return nil, false
}

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	pgErr, ok := pgErrorOf(err)

	return ok && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	pgErr, ok := pgErrorOf(err)

	return ok && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// translateUserConstraintError maps the users unique constraints onto the
// registration errors. It returns nil when err is not one of them.
func translateUserConstraintError(err error) error {
	pgErr, ok := pgErrorOf(err)
	if !ok || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	switch pgErr.ConstraintName {
	case constraintUserTag:
		return domainerrors.ErrDuplicateTag
	case constraintUserEmail:
		return domainerrors.ErrDuplicateAccount
	default:
		return nil
	}
}
