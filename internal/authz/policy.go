// Package authz implements the static authorization policy: an ordered table
// mapping URL path prefixes to the roles allowed through. The table is built
// once at construction and handed to the request layer; it is never mutated
// at runtime.
package authz

import (
	"strings"

	"goldcosmetics/internal/model"
)

// Rule grants access to a path prefix. A rule with Public set requires no
// session at all; a rule with an empty role list admits any authenticated
// account.
type Rule struct {
	Prefix string
	Public bool
	Roles  []model.Role
}

// Policy evaluates rules top to bottom; the first matching prefix decides.
// Every path matches: the trailing catch-all rule requires authentication
// for anything the earlier rules do not name.
type Policy struct {
	rules []Rule
}

// New builds a policy from an ordered rule table. A catch-all
// any-authenticated rule is appended for paths no rule matches.
func New(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// Default returns the storefront policy table.
func Default() *Policy {
	return New([]Rule{
		{Prefix: "/", Public: true},
		{Prefix: "/about", Public: true},
		{Prefix: "/register", Public: true},
		{Prefix: "/login", Public: true},
		{Prefix: "/logout", Public: true},
		{Prefix: "/forgot-password", Public: true},
		{Prefix: "/css", Public: true},
		{Prefix: "/js", Public: true},
		{Prefix: "/images", Public: true},
		{Prefix: "/error", Public: true},
		{Prefix: "/healthz", Public: true},
		{Prefix: "/metrics", Public: true},
		{Prefix: "/swagger", Public: true},
		{Prefix: "/admin", Roles: []model.Role{model.RoleAdmin}},
		{Prefix: "/employee", Roles: []model.Role{model.RoleEmployee, model.RoleAdmin}},
		{Prefix: "/customer", Roles: []model.Role{model.RoleCustomer, model.RoleEmployee, model.RoleAdmin}},
	})
}

// match returns the first rule whose prefix covers path. The "/" rule only
// matches the root itself, otherwise it would shadow every other rule.
func (p *Policy) match(path string) *Rule {
	for i := range p.rules {
		r := &p.rules[i]
		if r.Prefix == "/" {
			if path == "/" {
				return r
			}
			continue
		}
		if path == r.Prefix || strings.HasPrefix(path, r.Prefix+"/") {
			return r
		}
	}
	return nil
}

// IsPublic reports whether the path requires no session.
func (p *Policy) IsPublic(path string) bool {
	r := p.match(path)
	return r != nil && r.Public
}

// Allows decides whether an account holding role may access path. Paths not
// named by any rule admit any authenticated account, so an invalid (absent)
// role is denied there.
func (p *Policy) Allows(role model.Role, path string) bool {
	r := p.match(path)
	if r == nil {
		return role.Valid()
	}
	if r.Public {
		return true
	}
	if len(r.Roles) == 0 {
		return role.Valid()
	}
	for _, allowed := range r.Roles {
		if role == allowed {
			return true
		}
	}
	return false
}
