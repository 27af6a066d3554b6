package auth

import (
	"strings"

	"qr-coupon-server/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole  = errs.New("invalid role")
	ErrUnauthorized = errs.New("unauthorized")
	ErrForbidden    = errs.New("forbidden")
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

func NewRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleClient:
		return RoleClient, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

// Principal is the verified dashboard user resolved from the identity provider
type Principal struct {
	UserID   uuid.UUID
	Role     Role
	ClientID *uuid.UUID
}

func (p *Principal) IsAdmin() bool { return p != nil && p.Role == RoleAdmin }

// CanView reports whether the principal may read data owned by clientID
func (p *Principal) CanView(clientID *uuid.UUID) bool {
	if p == nil {
		return false
	}
	if p.Role == RoleAdmin {
		return true
	}
	return p.Role == RoleClient && p.ClientID != nil && clientID != nil && *p.ClientID == *clientID
}
