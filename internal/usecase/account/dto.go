package account

import (
	"time"

	"github.com/google/uuid"
	domainAccount "pinpoint-accounts/internal/domain/account"
)

type RegisterUserRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	UserName    string `json:"userName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
}

type RegisterPartnerRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	UserName    string `json:"userName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	LegalName   string `json:"legalName" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

type PartnerDetailsResponse struct {
	LegalName string `json:"legalName"`
	Address   string `json:"address"`
	Category  string `json:"category"`
}

// AccountResponse is the external view of an account. The password hash
// and any pending OTP are never serialized.
type AccountResponse struct {
	ID              uuid.UUID               `json:"id"`
	AccountType     string                  `json:"accountType"`
	FirstName       string                  `json:"firstName"`
	LastName        string                  `json:"lastName"`
	UserName        string                  `json:"userName"`
	DateOfBirth     string                  `json:"dateOfBirth"`
	City            string                  `json:"city"`
	State           string                  `json:"state"`
	Email           string                  `json:"email"`
	IsEmailVerified bool                    `json:"isEmailVerified"`
	PartnerDetails  *PartnerDetailsResponse `json:"partnerDetails,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// RegisterResponse is returned by the registration flows.
type RegisterResponse struct {
	Account *AccountResponse `json:"account"`
	Token   string           `json:"token"`

	// OTPEmailSent reports whether the verification email went out.
	// The account is committed either way.
	OTPEmailSent bool `json:"otpEmailSent"`
}

// AuthResponse is returned by login.
type AuthResponse struct {
	Account *AccountResponse `json:"account"`
	Token   string           `json:"token"`
}

// OTPResponse is returned by the OTP issuance flows.
type OTPResponse struct {
	Account      *AccountResponse `json:"account"`
	OTPEmailSent bool             `json:"otpEmailSent"`
}

// DeleteAllResponse reports the outcome of the administrative bulk delete.
type DeleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}

func ToAccountResponse(a *domainAccount.Account) *AccountResponse {
	if a == nil {
		return nil
	}

	resp := &AccountResponse{
		ID:              a.ID,
		AccountType:     string(a.AccountType),
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		UserName:        a.UserName,
		DateOfBirth:     a.DateOfBirth,
		City:            a.City,
		State:           a.State,
		Email:           a.Email,
		IsEmailVerified: a.IsEmailVerified,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.Partner != nil {
		resp.PartnerDetails = &PartnerDetailsResponse{
			LegalName: a.Partner.LegalName,
			Address:   a.Partner.Address,
			Category:  a.Partner.Category,
		}
	}

	return resp
}
