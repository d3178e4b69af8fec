package account

import (
	"time"

	"github.com/google/uuid"
)

// AccountType distinguishes plain user accounts from partner accounts.
type AccountType string

const (
	TypeUser    AccountType = "user"
	TypePartner AccountType = "partner"
)

// Account represents an account entity in the domain.
type Account struct {
	ID              uuid.UUID
	AccountType     AccountType
	FirstName       string
	LastName        string
	UserName        string
	DateOfBirth     string
	City            string
	State           string
	Email           string
	PasswordHash    string
	IsEmailVerified bool

	// OTP fields are set only while a verification or reset cycle is pending.
	EmailOTP          *string
	EmailOTPExpiresAt *time.Time

	// SessionToken holds the most recently issued token for the account.
	SessionToken *string

	// Partner is populated iff AccountType == TypePartner.
	Partner *PartnerDetails

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PartnerDetails carries the business identity of a partner account.
type PartnerDetails struct {
	LegalName string
	Address   string
	Category  string
}

// IsPartner reports whether the account is a partner account.
func (a *Account) IsPartner() bool {
	return a.AccountType == TypePartner
}

// OTPExpired reports whether the pending OTP has expired at the given time.
// Accounts without a recorded expiration are treated as expired.
func (a *Account) OTPExpired(now time.Time) bool {
	if a.EmailOTPExpiresAt == nil {
		return true
	}
	return now.After(*a.EmailOTPExpiresAt)
}
