package account

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for account storage operations.
type Repository interface {
	Create(ctx context.Context, acc *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByOTP(ctx context.Context, otp string) (*Account, error)
	List(ctx context.Context, limit, offset int) ([]*Account, error)

	// SetOTP records a fresh OTP and its expiration for the account.
	SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error

	// MarkEmailVerified sets isEmailVerified and clears the OTP fields
	// in a single store write.
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	// UpdatePassword overwrites the password hash and clears the OTP
	// fields in a single store write.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	UpdateSessionToken(ctx context.Context, id uuid.UUID, token string) error

	// DeleteAll removes every account and returns the number deleted.
	DeleteAll(ctx context.Context) (int64, error)
}
