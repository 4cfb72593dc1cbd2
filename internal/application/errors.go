package application

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password on login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailNotFound is returned by reset requests for unregistered emails.
	ErrEmailNotFound = errors.New("email not registered")
	// ErrResetNotFoundOrExpired covers a wrong id, a wrong token and an
	// elapsed reset window alike.
	ErrResetNotFoundOrExpired = errors.New("reset request not found or expired")
	// ErrNotificationDeliveryFailed is returned when the reset email could
	// not be handed to the sender. The persisted token stays valid.
	ErrNotificationDeliveryFailed = errors.New("notification delivery failed")
	ErrEmailTaken                 = errors.New("email already registered")
	ErrUserNotFound               = errors.New("user not found")
	ErrBookExists                 = errors.New("book already added")
)
