package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code raised when an INSERT or
// UPDATE breaks a unique index. The database constraint is the authoritative
// uniqueness signal; SELECT pre-checks are a fast path only.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
