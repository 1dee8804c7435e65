package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateUser = errors.New("username already taken")
)

type GormRepo struct {
	DB *gorm.DB
}

// isDuplicateErr catches unique-constraint violations. Not every driver
// translates them to gorm.ErrDuplicatedKey, so the raw messages of the
// postgres and sqlite drivers are matched as well.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
