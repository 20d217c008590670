package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// FromPostgres wraps a store error with a code derived from its SQLSTATE
// class; a nil err stays nil
//
//	22, 23 data and constraint errors: the rows being seeded are bad
//	08, 57 connection and shutdown:    the store is unavailable
//	42P01  undefined table:            the schema was never created
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	out := Wrap(err, pgCode(err), msg)
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) && pe.ColumnName != "" {
		out = WithField(out, pe.ColumnName)
	}
	return out
}

func pgCode(err error) ErrorCode {
	var pe *pgconn.PgError
	if !stderrs.As(err, &pe) {
		if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
			return ErrorCodeUnavailable
		}
		return ErrorCodeDB
	}
	if pe.Code == "42P01" {
		return ErrorCodeUnavailable
	}
	if len(pe.Code) < 2 {
		return ErrorCodeDB
	}
	switch pe.Code[:2] {
	case "22", "23":
		return ErrorCodeValidation
	case "08", "57":
		return ErrorCodeUnavailable
	}
	return ErrorCodeDB
}
