package service

import (
	"errors"

	"github.com/lib/pq"
)

// isUniqueViolationErr reports whether the error is a Postgres unique
// constraint violation surfaced by the repository layer.
func isUniqueViolationErr(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
