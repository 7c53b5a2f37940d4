package store

import (
	"database/sql"
	"errors"
	"fmt"

	"halcon-service/internal/apperr"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes surfaced to callers
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqNotNullViolation    = "23502"
	pqCheckViolation      = "23514"
	pqDataExceptionClass  = "22"
)

// translateError classifies a database error for the given resource.
// Errors that are already typed pass through untouched.
func translateError(err error, resource string, id any) error {
	if err == nil {
		return nil
	}
	if apperr.As(err) != nil {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(resource, id)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		details := map[string]any{}
		if pqErr.Constraint != "" {
			details["constraint"] = pqErr.Constraint
		}
		if pqErr.Column != "" {
			details["column"] = pqErr.Column
		}

		switch {
		case pqErr.Code == pqUniqueViolation:
			return apperr.Wrap(apperr.CodeConflict, err,
				fmt.Sprintf("%s already exists", resource)).WithDetails(details)
		case pqErr.Code == pqForeignKeyViolation:
			return apperr.Wrap(apperr.CodeConflict, err,
				fmt.Sprintf("%s conflicts with a related record", resource)).WithDetails(details)
		case pqErr.Code == pqNotNullViolation, pqErr.Code == pqCheckViolation,
			string(pqErr.Code.Class()) == pqDataExceptionClass:
			return apperr.Wrap(apperr.CodeValidation, err,
				fmt.Sprintf("invalid %s: %s", resource, pqErr.Message)).WithDetails(details)
		}
	}

	return apperr.Wrap(apperr.CodeStore, err, fmt.Sprintf("%s query failed", resource))
}
