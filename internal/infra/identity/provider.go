package identity

import (
	"strings"

	"qr-coupon-server/internal/domain/auth"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/pkg/jwt"
)

// Provider resolves dashboard principals from tokens minted by the external identity provider
type Provider struct {
	jwtService *jwt.Service
}

func NewProvider(jwtService *jwt.Service) *Provider {
	return &Provider{
		jwtService: jwtService,
	}
}

func (p *Provider) CurrentUser(token string) (*auth.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, auth.ErrUnauthorized
	}

	claims, err := p.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errs.Mark(err, auth.ErrUnauthorized)
	}

	role, err := auth.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, auth.ErrUnauthorized)
	}

	// a client account is meaningless without the brand it belongs to
	if role == auth.RoleClient && claims.ClientID == nil {
		return nil, errs.Mark(errs.New("client token without client_id"), auth.ErrUnauthorized)
	}

	return &auth.Principal{
		UserID:   claims.UserID,
		Role:     role,
		ClientID: claims.ClientID,
	}, nil
}

// Role returns the empty role for a nil principal
func (p *Provider) Role(principal *auth.Principal) auth.Role {
	if principal == nil {
		return ""
	}
	return principal.Role
}
