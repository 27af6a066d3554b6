package campaign

import (
	"strings"

	"github.com/shopspring/decimal"
)

const MaxNameLength = 200

type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

var hundred = decimal.NewFromInt(100)

func ParseCouponType(s string) (CouponType, error) {
	switch CouponType(strings.ToLower(strings.TrimSpace(s))) {
	case CouponTypePercentage:
		return CouponTypePercentage, nil
	case CouponTypeFixed:
		return CouponTypeFixed, nil
	default:
		return "", ErrInvalidCouponType
	}
}

func (t CouponType) String() string { return string(t) }

// Offer is the discount range advertised on a campaign's coupons
type Offer struct {
	couponType CouponType
	minValue   decimal.Decimal
	maxValue   decimal.Decimal
}

func NewOffer(couponType string, minValue, maxValue decimal.Decimal) (Offer, error) {
	ct, err := ParseCouponType(couponType)
	if err != nil {
		return Offer{}, err
	}
	if minValue.IsNegative() || maxValue.LessThan(minValue) {
		return Offer{}, ErrInvalidCouponRange
	}
	if ct == CouponTypePercentage && maxValue.GreaterThan(hundred) {
		return Offer{}, ErrInvalidCouponRange
	}
	return Offer{couponType: ct, minValue: minValue, maxValue: maxValue}, nil
}

func (o Offer) Type() CouponType          { return o.couponType }
func (o Offer) MinValue() decimal.Decimal { return o.minValue }
func (o Offer) MaxValue() decimal.Decimal { return o.maxValue }

func NormalizeName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" || len(name) > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// ReconstructOffer restores a persisted offer without re-validating it
func ReconstructOffer(couponType string, minValue, maxValue decimal.Decimal) Offer {
	return Offer{couponType: CouponType(couponType), minValue: minValue, maxValue: maxValue}
}
