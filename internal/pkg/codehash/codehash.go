package codehash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("code hashing failed")
	ErrMismatch      = errors.New("code mismatch")
	ErrEmptyCode     = errors.New("empty code")
)

// bcrypt cost for one-time codes
const DefaultCost = bcrypt.MinCost + 4

func Hash(code string) (string, error) {
	if code == "" {
		return "", ErrEmptyCode
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashedBytes), nil
}

func Compare(hashed, code string) error {
	if hashed == "" || code == "" {
		return ErrEmptyCode
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(code))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}

	return nil
}
