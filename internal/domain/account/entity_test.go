package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPExpired(t *testing.T) {
	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := issued.Add(15 * time.Minute)

	acc := &Account{EmailOTPExpiresAt: &expiresAt}

	assert.False(t, acc.OTPExpired(issued.Add(14*time.Minute+59*time.Second)))
	assert.False(t, acc.OTPExpired(expiresAt))
	assert.True(t, acc.OTPExpired(issued.Add(15*time.Minute+1*time.Second)))
}

func TestOTPExpiredWithoutExpiration(t *testing.T) {
	acc := &Account{}
	assert.True(t, acc.OTPExpired(time.Now()))
}

func TestIsPartner(t *testing.T) {
	assert.True(t, (&Account{AccountType: TypePartner}).IsPartner())
	assert.False(t, (&Account{AccountType: TypeUser}).IsPartner())
}
