package utils

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrGenerationParse     = errors.New("failed to parse generated avatar")
	ErrImageGeneration     = errors.New("image generation failed")
	ErrImageUpload         = errors.New("image upload failed")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAvatarNotFound      = errors.New("avatar not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrDatabaseError       = errors.New("database error")
)
