package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrAlreadySettled means the gateway payment id already has a
	// committed settlement; the caller returns the prior result.
	ErrAlreadySettled = errors.New("payment already settled")

	// ErrCouponExhausted means the conditional usage increment lost the
	// race to the last slot; the caller re-settles without the coupon.
	ErrCouponExhausted = errors.New("coupon usage limit reached")
)

const uniqueViolationCode = "23505"

// IsUniqueViolation recognizes a unique-constraint error from either
// postgres driver in use.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
