package domain

import "errors"

var (
	// ErrEmptyUsername indicates a login attempt with a blank username.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyComment indicates a comment without any visible text.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrNoSession indicates an action that requires an authenticated user.
	ErrNoSession = errors.New("no active session")
)
