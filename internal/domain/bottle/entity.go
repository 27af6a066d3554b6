package bottle

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"qr-coupon-server/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	tokenBytes     = 16
	MaxTokenLength = 128
)

var (
	ErrInvalidToken    = errs.New("invalid qr token")
	ErrTokenGeneration = errs.New("failed to generate qr token")
)

type Status string

const (
	StatusUnused Status = "unused"
	StatusUsed   Status = "used"
)

// Bottle is a single printed QR unit; it is claimed at most once
type Bottle struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	Token      string
	Status     Status
	ScannedAt  *time.Time
}

func (b Bottle) IsUsed() bool { return b.Status == StatusUsed }

func NormalizeToken(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" || len(t) > MaxTokenLength {
		return "", ErrInvalidToken
	}
	return t, nil
}

// NewToken returns an opaque 22 character url-safe token
func NewToken() (string, error) {
	var buf [tokenBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", errs.Mark(err, ErrTokenGeneration)
	}
	return base64.RawURLEncoding.EncodeToString(buf[:]), nil
}

func NewTokens(n int) ([]string, error) {
	tokens := make([]string, 0, n)
	for range n {
		t, err := NewToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
