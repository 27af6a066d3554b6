package coupon

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"

	"qr-coupon-server/internal/pkg/errs"
)

const (
	SuffixLength   = 6
	suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrInvalidCode    = errs.New("invalid coupon code format")
	ErrInvalidPrefix  = errs.New("invalid coupon code prefix")
	ErrCodeGeneration = errs.New("failed to generate coupon code")
)

var (
	prefixRegex = regexp.MustCompile(`^[A-Z0-9]{2,12}$`)
	codeRegex   = regexp.MustCompile(`^[A-Z0-9]{2,12}-[A-Z0-9]{6}$`)
	alphabetLen = big.NewInt(int64(len(suffixAlphabet)))
)

// Code has the shape PREFIX-XXXXXX
type Code string

func ParseCode(s string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// Generator is swapped in tests to force collisions
type Generator interface {
	Generate() (Code, error)
}

type RandomGenerator struct {
	prefix string
}

func NewRandomGenerator(prefix string) (*RandomGenerator, error) {
	p := strings.ToUpper(strings.TrimSpace(prefix))
	if !prefixRegex.MatchString(p) {
		return nil, ErrInvalidPrefix
	}
	return &RandomGenerator{prefix: p}, nil
}

func (g *RandomGenerator) Generate() (Code, error) {
	var sb strings.Builder
	sb.Grow(len(g.prefix) + 1 + SuffixLength)
	sb.WriteString(g.prefix)
	sb.WriteByte('-')
	for range SuffixLength {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", errs.Mark(err, ErrCodeGeneration)
		}
		sb.WriteByte(suffixAlphabet[n.Int64()])
	}
	return Code(sb.String()), nil
}
