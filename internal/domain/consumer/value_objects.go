package consumer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"qr-coupon-server/internal/pkg/errs"
)

const (
	DefaultDisplayName = "Anonymous"
	MaxNameLength      = 100
)

var ErrInvalidPhone = errs.New("invalid phone number")

var (
	e164Regex    = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)
	phoneNoise   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	countryRegex = regexp.MustCompile(`^[1-9][0-9]{0,3}$`)
)

// Phone is a number in E.164 form
type Phone struct {
	value string
}

// NewPhone canonicalises raw input; numbers without an international marker get defaultCountryCode
func NewPhone(raw, defaultCountryCode string) (Phone, error) {
	s := phoneNoise.Replace(strings.TrimSpace(raw))
	switch {
	case s == "":
		return Phone{}, ErrInvalidPhone
	case strings.HasPrefix(s, "+"):
	case strings.HasPrefix(s, "00"):
		s = "+" + s[2:]
	default:
		cc := strings.TrimPrefix(strings.TrimSpace(defaultCountryCode), "+")
		if !countryRegex.MatchString(cc) {
			return Phone{}, ErrInvalidPhone
		}
		s = "+" + cc + strings.TrimPrefix(s, "0")
	}
	if !e164Regex.MatchString(s) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }

// Masked hides all but the last four digits for dashboards
func (p Phone) Masked() string {
	return MaskPhone(p.value)
}

func MaskPhone(s string) string {
	if len(s) <= 4 {
		return s
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func NormalizeDisplayName(s string) string {
	name := strings.TrimSpace(s)
	if name == "" {
		return DefaultDisplayName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	return name
}
