package access

import (
	"testing"

	"github.com/vyavasthita/ecommerce/internal/auth"
)

func TestRequiredRole(t *testing.T) {
	cases := []struct {
		resource Resource
		op       Operation
		want     Role
	}{
		{Collection, OpRead, Anonymous},
		{Collection, OpCreate, Staff},
		{Product, OpRead, Anonymous},
		{Product, OpDelete, Staff},
		{Inventory, OpRead, Staff},
		{Cart, OpCreate, Authenticated},
		{CartItem, OpUpdate, Authenticated},
		{Order, OpRead, Authenticated},
		{Order, OpCreate, Authenticated},
		{Order, OpUpdate, Staff},
		{Order, OpDelete, Staff},
	}

	for _, tc := range cases {
		if got := RequiredRole(tc.resource, tc.op); got != tc.want {
			t.Errorf("RequiredRole(%s, %s) = %v, want %v", tc.resource, tc.op, got, tc.want)
		}
	}
}

func TestRequiredRole_FailsClosed(t *testing.T) {
	if got := RequiredRole(Resource("unknown"), OpRead); got != Staff {
		t.Fatalf("unknown resource should demand Staff, got %v", got)
	}
	if got := RequiredRole(Collection, Operation("purge")); got != Staff {
		t.Fatalf("unknown operation should demand Staff, got %v", got)
	}
}

func TestSatisfies(t *testing.T) {
	customer := &auth.Claims{UserID: 1, Role: auth.RoleCustomer}
	staff := &auth.Claims{UserID: 2, Role: auth.RoleStaff}

	cases := []struct {
		name     string
		required Role
		claims   *auth.Claims
		want     bool
	}{
		{"anonymous open to all", Anonymous, nil, true},
		{"anonymous open to customer", Anonymous, customer, true},
		{"authenticated rejects anonymous", Authenticated, nil, false},
		{"authenticated accepts customer", Authenticated, customer, true},
		{"authenticated accepts staff", Authenticated, staff, true},
		{"staff rejects anonymous", Staff, nil, false},
		{"staff rejects customer", Staff, customer, false},
		{"staff accepts staff", Staff, staff, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Satisfies(tc.required, tc.claims); got != tc.want {
				t.Fatalf("Satisfies(%v) = %v, want %v", tc.required, got, tc.want)
			}
		})
	}
}
