package repositories

import "errors"

// ErrNotFound is wrapped by every repository lookup that matched nothing
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when a unique constraint rejects the write
var ErrAlreadyExists = errors.New("record already exists")
