package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel represents the database model for Account
type AccountModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountType     string    `gorm:"type:varchar(20);not null"`
	FirstName       string    `gorm:"type:varchar(100);not null"`
	LastName        string    `gorm:"type:varchar(100);not null"`
	UserName        string    `gorm:"type:varchar(100);not null"`
	DateOfBirth     string    `gorm:"type:varchar(50);not null"`
	City            string    `gorm:"type:varchar(100);not null"`
	State           string    `gorm:"type:varchar(100);not null"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	IsEmailVerified bool      `gorm:"default:false;not null"`

	EmailOTP          *string    `gorm:"type:varchar(10);index"`
	EmailOTPExpiresAt *time.Time `gorm:"type:timestamptz"`

	SessionToken *string `gorm:"type:varchar(500)"`

	// Partner columns, null for plain user accounts.
	LegalName *string `gorm:"type:varchar(255)"`
	Address   *string `gorm:"type:text"`
	Category  *string `gorm:"type:varchar(100)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (AccountModel) TableName() string {
	return "accounts"
}
