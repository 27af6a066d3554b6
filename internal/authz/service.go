package authz

import (
	"net/http"
	"strings"

	"qr-coupon-server/internal/domain/auth"
	"qr-coupon-server/internal/pkg/errs"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy is a single allow rule
type Policy struct {
	Subject string
	Object  string
	Action  string
}

// DefaultPolicies grant admins the whole admin surface and clients read-only access to their dashboard
var DefaultPolicies = []Policy{
	{Subject: string(auth.RoleAdmin), Object: "/api/admin/*", Action: "*"},
	{Subject: string(auth.RoleClient), Object: "/api/client/*", Action: http.MethodGet},
}

var ErrAuthzUnavailable = errs.New("authz service unavailable")

type Service struct {
	enforcer *casbin.SyncedEnforcer
}

func NewService(policies []Policy) (*Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, errs.Wrap(err, "load authz model failed")
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, errs.Wrap(err, "init authz enforcer failed")
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)

	rules := make([][]string, 0, len(policies))
	for _, p := range policies {
		rules = append(rules, []string{p.Subject, p.Object, NormalizeAction(p.Action)})
	}
	if len(rules) > 0 {
		if _, err := enforcer.AddPolicies(rules); err != nil {
			return nil, errs.Wrap(err, "load authz policy failed")
		}
	}

	return &Service{enforcer: enforcer}, nil
}

func NewDefaultService() (*Service, error) {
	return NewService(DefaultPolicies)
}

func (s *Service) Enforce(role auth.Role, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, ErrAuthzUnavailable
	}
	if role == "" {
		return false, nil
	}
	return s.enforcer.Enforce(string(role), NormalizeObject(obj), NormalizeAction(act))
}

func NormalizeObject(obj string) string {
	obj = strings.TrimSpace(obj)
	if obj == "" {
		return "/"
	}
	if len(obj) > 1 {
		obj = strings.TrimRight(obj, "/")
	}
	return obj
}

func NormalizeAction(act string) string {
	act = strings.ToUpper(strings.TrimSpace(act))
	if act == "" {
		return "*"
	}
	return act
}
