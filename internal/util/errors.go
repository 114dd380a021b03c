package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizNotPublished     = errors.New("quiz not published or not accessible")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrAlreadySubmitted     = errors.New("attempt already submitted")
	ErrDeadlinePassed       = errors.New("attempt deadline has passed")
	ErrExamDateInPast       = errors.New("exam date must be in the future")
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrSessionNotFound      = errors.New("adaptive session not found")
)
