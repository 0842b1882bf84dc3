package service

import (
	"errors"

	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/repository"
)

var (
	// ErrServiceUnavailable indicates the relational store is not connected.
	ErrServiceUnavailable = database.ErrUnavailable
	// ErrInvalidRequest indicates an update without any updatable field.
	ErrInvalidRequest = repository.ErrInvalidRequest
	// ErrUnauthorized indicates a credential mismatch for any principal kind.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrInvalidPayload indicates a request document that failed shape validation.
	ErrInvalidPayload = errors.New("invalid payload")
)
