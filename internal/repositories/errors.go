package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrIdentityNotFound is returned when the identity provider has no such user
var ErrIdentityNotFound = errors.New("identity not found")

// IsNotFoundError reports whether err means the record does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrIdentityNotFound)
}

// IsDuplicateKeyError reports whether err is a unique constraint violation.
// Requires gorm.Config.TranslateError.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// ErrConditionFailed is returned by conditional updates that matched no row
// because the record is no longer in the expected state.
var ErrConditionFailed = errors.New("record not in expected state")
