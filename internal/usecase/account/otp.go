package account

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	otpDigits = 6
	otpTTL    = 15 * time.Minute
)

// generateOTP returns a zero-padded numeric one-time code.
func generateOTP() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(otpDigits), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
