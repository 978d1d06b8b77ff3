package postgres

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/klimenko666/dptmptch/internal/common"
)

const (
	sqlstateUndefinedTable  = "42P01"
	sqlstateUniqueViolation = "23505"
)

// storeError classifies driver failures into the application taxonomy.
// A missing table or a broken connection surfaces as unavailable, which
// is what lets the archival sweep attempt lazy schema initialization.
func storeError(message string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == sqlstateUndefinedTable:
			return common.NewError(common.CodeUnavailable, "store not initialized", err)
		case strings.HasPrefix(pgErr.Code, "08"):
			return common.NewError(common.CodeUnavailable, "store unreachable", err)
		case pgErr.Code == sqlstateUniqueViolation:
			return common.NewError(common.CodeConflict, message, err)
		}
	}
	if errors.Is(err, driver.ErrBadConn) {
		return common.NewError(common.CodeUnavailable, "store unreachable", err)
	}
	return common.NewError(common.CodeInternal, message, err)
}
