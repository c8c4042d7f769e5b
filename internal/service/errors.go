package service

import (
	"errors"

	"innsikt/internal/query"
)

var ErrNotFound = errors.New("not found")

func invalid(err error) error {
	return &query.ValidationError{Fields: []string{err.Error()}}
}
