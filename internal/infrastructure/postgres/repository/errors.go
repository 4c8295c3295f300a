package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pricetrust/pricing-service/internal/domain"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the repositories translate into the domain
// error vocabulary. Usecases never see raw sqlstate strings.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrDuplicateSnapshot
		case pgForeignKeyViolation:
			return domain.ErrMissingReference
		case pgCheckViolation:
			return domain.ErrConstraintViolation
		}
	}
	return err
}
