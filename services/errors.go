package services

import (
	"errors"

	"github.com/mychesstour/chesstour-api/repositories"
)

// Общие ошибки сервисного слоя, используемые в маппинге HTTP.
var (
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already registered")
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters")

	ErrWaitlistDuplicate = repositories.ErrWaitlistDuplicate

	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
