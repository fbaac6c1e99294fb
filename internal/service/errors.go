package service

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrQuotaExceeded  = errors.New("message limit reached")
	ErrStorage        = errors.New("storage failure")
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already taken")
	ErrEmailExists    = errors.New("email already registered")
)
