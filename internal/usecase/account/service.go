package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"pinpoint-accounts/internal/config"
	domainAccount "pinpoint-accounts/internal/domain/account"
	"pinpoint-accounts/internal/logger"
	appErrors "pinpoint-accounts/pkg/errors"
	"pinpoint-accounts/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	templateOTP           = "otp"
	templateOnboarding    = "onboarding"
	templatePasswordReset = "password_reset"

	subjectOTPVerification = "OTP Email Verification"
	subjectNewOTP          = "New OTP Code"
	subjectResetOTP        = "Password Reset OTP Code"
	subjectWelcome         = "Welcome to Pinpoint!"
	subjectPasswordReset   = "Your Password Was Reset"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Notifier delivers templated email. Delivery is best effort: account
// mutations commit independently of notification outcome.
type Notifier interface {
	Send(ctx context.Context, subject, to, templateID string, data map[string]interface{}) error
}

// Service implements the account use cases.
type Service struct {
	repo     domainAccount.Repository
	notifier Notifier
	config   *config.Config
}

// NewService creates a new account service.
func NewService(repo domainAccount.Repository, notifier Notifier, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		config:   cfg,
	}
}

// RegisterUser creates a plain user account, issues a session token and
// sends the verification OTP.
func (s *Service) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*RegisterResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", utils.ValidationMessage(err), err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), err)
	}

	acc := &domainAccount.Account{
		AccountType: domainAccount.TypeUser,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		UserName:    req.UserName,
		DateOfBirth: req.DateOfBirth,
		City:        req.City,
		State:       req.State,
		Email:       req.Email,
	}

	return s.register(ctx, acc, req.Password)
}

// RegisterPartner creates a partner account carrying the partner's
// business identity.
func (s *Service) RegisterPartner(ctx context.Context, req *RegisterPartnerRequest) (*RegisterResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", utils.ValidationMessage(err), err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), err)
	}

	acc := &domainAccount.Account{
		AccountType: domainAccount.TypePartner,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		UserName:    req.UserName,
		DateOfBirth: req.DateOfBirth,
		City:        req.City,
		State:       req.State,
		Email:       req.Email,
		Partner: &domainAccount.PartnerDetails{
			LegalName: req.LegalName,
			Address:   req.Address,
			Category:  req.Category,
		},
	}

	return s.register(ctx, acc, req.Password)
}

func (s *Service) register(ctx context.Context, acc *domainAccount.Account, password string) (*RegisterResponse, error) {
	existing, err := s.repo.GetByEmail(ctx, acc.Email)
	if err != nil && !errors.Is(err, domainAccount.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, domainAccount.ErrAccountAlreadyExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	acc.PasswordHash = hash

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(otpTTL)
	acc.EmailOTP = &otp
	acc.EmailOTPExpiresAt = &expiresAt
	acc.IsEmailVerified = false

	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(acc.ID, acc.Email, s.config.JWT.Secret, s.tokenExpiry())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.repo.UpdateSessionToken(ctx, acc.ID, token); err != nil {
		return nil, err
	}
	acc.SessionToken = &token

	// The account is committed at this point. A failed notification is
	// reported, not rolled back; the caller can fall back to resendOtp.
	sent := s.sendMail(ctx, subjectOTPVerification, acc.Email, templateOTP,
		map[string]interface{}{"emailOtp": otp})

	return &RegisterResponse{
		Account:      ToAccountResponse(acc),
		Token:        token,
		OTPEmailSent: sent,
	}, nil
}

// Login verifies credentials and issues a fresh session token,
// overwriting the previously recorded one.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", utils.ValidationMessage(err), err)
	}

	acc, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return nil, domainAccount.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(acc.PasswordHash, req.Password) {
		return nil, domainAccount.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(acc.ID, acc.Email, s.config.JWT.Secret, s.tokenExpiry())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.repo.UpdateSessionToken(ctx, acc.ID, token); err != nil {
		return nil, err
	}
	acc.SessionToken = &token

	return &AuthResponse{
		Account: ToAccountResponse(acc),
		Token:   token,
	}, nil
}

// VerifyEmail consumes a pending OTP, marks the account verified and
// sends the onboarding mail.
func (s *Service) VerifyEmail(ctx context.Context, otp string) (*AccountResponse, error) {
	acc, err := s.lookupByOTP(ctx, otp)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkEmailVerified(ctx, acc.ID); err != nil {
		return nil, err
	}
	acc.IsEmailVerified = true
	acc.EmailOTP = nil
	acc.EmailOTPExpiresAt = nil

	s.sendMail(ctx, subjectWelcome, acc.Email, templateOnboarding, map[string]interface{}{})

	return ToAccountResponse(acc), nil
}

// ResendOTP issues a fresh OTP for the account and emails it.
func (s *Service) ResendOTP(ctx context.Context, accountID string) (*OTPResponse, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "userID is invalid", err)
	}

	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.issueOTP(ctx, acc, subjectNewOTP)
}

// InitForgotPassword starts a password reset cycle by issuing an OTP to
// the account matching the email.
func (s *Service) InitForgotPassword(ctx context.Context, req *ForgotPasswordRequest) (*OTPResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", utils.ValidationMessage(err), err)
	}

	acc, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	return s.issueOTP(ctx, acc, subjectResetOTP)
}

// FinalizeForgotPassword consumes a reset OTP and overwrites the stored
// password hash. The OTP is cleared so it cannot be replayed.
func (s *Service) FinalizeForgotPassword(ctx context.Context, otp string, req *ResetPasswordRequest) (*AccountResponse, error) {
	acc, err := s.lookupByOTP(ctx, otp)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", utils.ValidationMessage(err), err)
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), err)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, acc.ID, hash); err != nil {
		return nil, err
	}
	acc.PasswordHash = hash
	acc.EmailOTP = nil
	acc.EmailOTPExpiresAt = nil

	s.sendMail(ctx, subjectPasswordReset, acc.Email, templatePasswordReset,
		map[string]interface{}{"name": acc.FirstName})

	return ToAccountResponse(acc), nil
}

// GetAll lists accounts. Retrieval is bounded: limit defaults to 50 and
// is capped at 200.
func (s *Service) GetAll(ctx context.Context, limit, offset int) ([]*AccountResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*AccountResponse, len(accounts))
	for i, acc := range accounts {
		responses[i] = ToAccountResponse(acc)
	}

	return responses, nil
}

// Get returns a single account by id.
func (s *Service) Get(ctx context.Context, accountID string) (*AccountResponse, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "id is invalid", err)
	}

	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToAccountResponse(acc), nil
}

// DeleteAll removes every account. The supplied tag must match the
// dedicated admin secret; an unset secret disables the operation.
func (s *Service) DeleteAll(ctx context.Context, tag string) (*DeleteAllResponse, error) {
	secret := s.config.Admin.DeleteTag
	if secret == "" || subtle.ConstantTimeCompare([]byte(tag), []byte(secret)) != 1 {
		return nil, domainAccount.ErrUnauthorized
	}

	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return nil, err
	}

	logger.Warn("All accounts deleted",
		zap.Int64("deleted", deleted),
	)

	return &DeleteAllResponse{Deleted: deleted}, nil
}

func (s *Service) lookupByOTP(ctx context.Context, otp string) (*domainAccount.Account, error) {
	if otp == "" {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "No otp detected", nil)
	}

	acc, err := s.repo.GetByOTP(ctx, otp)
	if err != nil {
		if errors.Is(err, domainAccount.ErrAccountNotFound) {
			return nil, domainAccount.ErrInvalidOTP
		}
		return nil, err
	}

	if acc.OTPExpired(time.Now()) {
		return nil, domainAccount.ErrOTPExpired
	}

	return acc, nil
}

func (s *Service) issueOTP(ctx context.Context, acc *domainAccount.Account, subject string) (*OTPResponse, error) {
	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(otpTTL)

	if err := s.repo.SetOTP(ctx, acc.ID, otp, expiresAt); err != nil {
		return nil, err
	}
	acc.EmailOTP = &otp
	acc.EmailOTPExpiresAt = &expiresAt

	// Unlike registration there is nothing else for the caller to act
	// on: delivering the code is the whole operation, so a mailer
	// failure is surfaced instead of flagged.
	if !s.sendMail(ctx, subject, acc.Email, templateOTP, map[string]interface{}{"emailOtp": otp}) {
		return nil, appErrors.NewDependencyError("Failed to send OTP email", nil)
	}

	return &OTPResponse{
		Account:      ToAccountResponse(acc),
		OTPEmailSent: true,
	}, nil
}

func (s *Service) sendMail(ctx context.Context, subject, to, templateID string, data map[string]interface{}) bool {
	if err := s.notifier.Send(ctx, subject, to, templateID, data); err != nil {
		logger.Error("Failed to send notification email",
			zap.String("template", templateID),
			zap.String("recipient", to),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (s *Service) tokenExpiry() time.Duration {
	days := s.config.JWT.ExpiryDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}
