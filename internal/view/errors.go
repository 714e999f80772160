package view

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a slug with no published post.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post %q not found", e.Slug)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
