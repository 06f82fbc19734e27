package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	accessCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	AccessCodeLength    = 6
	MinAccessCodeLength = 4
	MaxAccessCodeLength = 32
)

var (
	ErrCodeLengthTooShort = errors.New("access code length must be at least 4")
	ErrCodeLengthTooLong  = errors.New("access code length must be at most 32")
)

// GenerateAccessCode returns a random code of AccessCodeLength characters
// drawn from A-Z and 0-9.
func GenerateAccessCode() (string, error) {
	return GenerateAccessCodeN(AccessCodeLength)
}

// GenerateAccessCodeN returns a random code of n characters drawn from A-Z and 0-9.
func GenerateAccessCodeN(n int) (string, error) {
	if n < MinAccessCodeLength {
		return "", ErrCodeLengthTooShort
	}
	if n > MaxAccessCodeLength {
		return "", ErrCodeLengthTooLong
	}

	result := make([]byte, n)
	for i := range result {
		ch, err := randChar(accessCodeChars)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	return string(result), nil
}

// randChar picks a random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
