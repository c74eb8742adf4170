package model

import "errors"

var (
	ErrRoleNotFound    = errors.New("role not found")
	ErrRoleNotAssigned = errors.New("role not assigned to user")
	ErrUserNotFound    = errors.New("user not found")
)
