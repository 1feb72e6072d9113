package service

import "errors"

var (
	ErrInvalidID        = errors.New("invalid user id")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
	ErrUserNotFound     = errors.New("user not found")
)
