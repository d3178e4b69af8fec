package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pinpoint-accounts/internal/domain/account"
	"pinpoint-accounts/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRepository implements the account.Repository interface
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	acc.ID = uuid.New()
	acc.CreatedAt = time.Now()
	acc.UpdatedAt = time.Now()

	dbModel := toAccountModel(acc)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "email") {
			return account.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	acc.ID = dbModel.ID
	acc.CreatedAt = dbModel.CreatedAt
	acc.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) GetByOTP(ctx context.Context, otp string) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).
		Where("email_otp = ? AND email_otp <> ''", otp).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by otp: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*account.Account, error) {
	var dbModels []models.AccountModel
	err := r.db.DB.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]*account.Account, len(dbModels))
	for i := range dbModels {
		accounts[i] = toAccountEntity(&dbModels[i])
	}

	return accounts, nil
}

func (r *AccountRepository) SetOTP(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email_otp":            otp,
			"email_otp_expires_at": expiresAt,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set otp: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_email_verified":    true,
			"email_otp":            nil,
			"email_otp_expires_at": nil,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark email verified: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":        passwordHash,
			"email_otp":            nil,
			"email_otp_expires_at": nil,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateSessionToken(ctx context.Context, id uuid.UUID, token string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"session_token": token,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update session token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.AccountModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete accounts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func toAccountModel(acc *account.Account) *models.AccountModel {
	m := &models.AccountModel{
		ID:                acc.ID,
		AccountType:       string(acc.AccountType),
		FirstName:         acc.FirstName,
		LastName:          acc.LastName,
		UserName:          acc.UserName,
		DateOfBirth:       acc.DateOfBirth,
		City:              acc.City,
		State:             acc.State,
		Email:             acc.Email,
		PasswordHash:      acc.PasswordHash,
		IsEmailVerified:   acc.IsEmailVerified,
		EmailOTP:          acc.EmailOTP,
		EmailOTPExpiresAt: acc.EmailOTPExpiresAt,
		SessionToken:      acc.SessionToken,
		CreatedAt:         acc.CreatedAt,
		UpdatedAt:         acc.UpdatedAt,
	}

	if acc.Partner != nil {
		m.LegalName = &acc.Partner.LegalName
		m.Address = &acc.Partner.Address
		m.Category = &acc.Partner.Category
	}

	return m
}

func toAccountEntity(m *models.AccountModel) *account.Account {
	acc := &account.Account{
		ID:                m.ID,
		AccountType:       account.AccountType(m.AccountType),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		UserName:          m.UserName,
		DateOfBirth:       m.DateOfBirth,
		City:              m.City,
		State:             m.State,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		IsEmailVerified:   m.IsEmailVerified,
		EmailOTP:          m.EmailOTP,
		EmailOTPExpiresAt: m.EmailOTPExpiresAt,
		SessionToken:      m.SessionToken,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	if acc.AccountType == account.TypePartner {
		acc.Partner = &account.PartnerDetails{}
		if m.LegalName != nil {
			acc.Partner.LegalName = *m.LegalName
		}
		if m.Address != nil {
			acc.Partner.Address = *m.Address
		}
		if m.Category != nil {
			acc.Partner.Category = *m.Category
		}
	}

	return acc
}
