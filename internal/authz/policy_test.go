package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goldcosmetics/internal/model"
)

func TestPolicy_IsPublic(t *testing.T) {
	p := Default()

	tests := []struct {
		path   string
		public bool
	}{
		{"/", true},
		{"/about", true},
		{"/register", true},
		{"/login", true},
		{"/logout", true},
		{"/forgot-password", true},
		{"/css/site.css", true},
		{"/js/app.js", true},
		{"/images/logo.png", true},
		{"/error", true},
		{"/healthz", true},
		{"/healthz/ready", true},
		{"/metrics", true},
		{"/swagger/index.html", true},
		{"/dashboard", false},
		{"/admin/users", false},
		{"/employee/orders", false},
		{"/customer/profile", false},
		// The root rule must not shadow everything under it.
		{"/anything-else", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.public, p.IsPublic(tt.path))
		})
	}
}

func TestPolicy_Allows(t *testing.T) {
	p := Default()

	tests := []struct {
		name    string
		role    model.Role
		path    string
		allowed bool
	}{
		{"customer blocked from admin", model.RoleCustomer, "/admin/users", false},
		{"employee blocked from admin", model.RoleEmployee, "/admin/users", false},
		{"admin reaches admin", model.RoleAdmin, "/admin/users", true},
		{"customer blocked from employee area", model.RoleCustomer, "/employee/orders", false},
		{"employee reaches employee area", model.RoleEmployee, "/employee/orders", true},
		{"admin reaches employee area", model.RoleAdmin, "/employee/orders", true},
		{"customer reaches customer area", model.RoleCustomer, "/customer/profile", true},
		{"employee reaches customer area", model.RoleEmployee, "/customer/profile", true},
		{"admin reaches customer area", model.RoleAdmin, "/customer/profile", true},
		{"public path allows anyone", model.RoleCustomer, "/about", true},
		{"unmatched path admits any valid role", model.RoleCustomer, "/dashboard", true},
		{"unmatched path rejects an absent role", model.Role(""), "/dashboard", false},
		{"unmatched path rejects an unknown role", model.Role("SUPERUSER"), "/dashboard", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, p.Allows(tt.role, tt.path))
		})
	}
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	// A narrower later rule never fires when an earlier prefix covers the
	// path; rule order is the policy.
	p := New([]Rule{
		{Prefix: "/admin", Roles: []model.Role{model.RoleAdmin}},
		{Prefix: "/admin/reports", Roles: []model.Role{model.RoleEmployee}},
	})

	assert.False(t, p.Allows(model.RoleEmployee, "/admin/reports"))
	assert.True(t, p.Allows(model.RoleAdmin, "/admin/reports"))
}

func TestPolicy_EmptyRoleListMeansAuthenticated(t *testing.T) {
	p := New([]Rule{{Prefix: "/internal"}})

	assert.True(t, p.Allows(model.RoleCustomer, "/internal/tools"))
	assert.False(t, p.Allows(model.Role(""), "/internal/tools"))
	assert.False(t, p.IsPublic("/internal/tools"))
}
