package repositories

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrRecordNotFound    = errors.New("record not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)
