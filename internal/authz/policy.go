package authz

import (
	"fmt"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/casbin/casbin"
)

type Object string

const (
	ObjectHotels   Object = "hotels"
	ObjectBookings Object = "bookings"
	ObjectPayments Object = "payments"
	ObjectAdmin    Object = "admin"
	ObjectAuth     Object = "auth"
)

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var rules = [][]string{
	{string(domain.RoleAnonymous), string(ObjectHotels), string(ActionRead)},
	{string(domain.RoleAnonymous), string(ObjectAuth), string(ActionWrite)},
	{string(domain.RoleUser), string(ObjectBookings), string(ActionRead)},
	{string(domain.RoleUser), string(ObjectBookings), string(ActionWrite)},
	{string(domain.RoleUser), string(ObjectPayments), string(ActionRead)},
	{string(domain.RoleUser), string(ObjectPayments), string(ActionWrite)},
	{string(domain.RoleAdmin), string(ObjectHotels), string(ActionWrite)},
	{string(domain.RoleAdmin), string(ObjectAdmin), string(ActionRead)},
	{string(domain.RoleAdmin), string(ObjectAdmin), string(ActionWrite)},
}

// ADMIN inherits USER, USER inherits ANONYMOUS.
var inheritance = [][2]domain.Role{
	{domain.RoleAdmin, domain.RoleUser},
	{domain.RoleUser, domain.RoleAnonymous},
}

// Policy answers role checks. Ownership of individual bookings is decided
// by the services, not here.
type Policy struct {
	enforcer *casbin.Enforcer
}

func NewPolicy() (*Policy, error) {
	e, err := casbin.NewEnforcerSafe(casbin.NewModel(modelText))
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	for _, r := range rules {
		e.AddPolicy(r[0], r[1], r[2])
	}
	for _, link := range inheritance {
		e.AddGroupingPolicy(string(link[0]), string(link[1]))
	}
	e.BuildRoleLinks()
	return &Policy{enforcer: e}, nil
}

func (p *Policy) Allowed(role domain.Role, obj Object, act Action) bool {
	ok, err := p.enforcer.EnforceSafe(string(role), string(obj), string(act))
	return err == nil && ok
}
