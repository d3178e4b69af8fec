package account

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account with email already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("otp is invalid")
	ErrOTPExpired         = errors.New("otp has expired")

	ErrUnauthorized = errors.New("unauthorized access")
)
