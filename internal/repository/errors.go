package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicate reports a unique-constraint violation.
var ErrDuplicate = errors.New("duplicate row")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
