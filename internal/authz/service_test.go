package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestBootstrapAdminPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	allow, err := svc.EnforceRole("ADMIN", "/api/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce admin failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected ADMIN allowed on /api/admin/orders")
	}

	allow, err = svc.EnforceRole("ADMIN", "/api/admin/orders/42", "PATCH")
	if err != nil {
		t.Fatalf("enforce admin patch failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected ADMIN allowed for any method under /api/admin")
	}

	allow, err = svc.EnforceRole("USER", "/api/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce user failed: %v", err)
	}
	if allow {
		t.Fatalf("expected USER denied on admin routes")
	}
}

func TestGrantAndRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("support", "/api/admin/orders", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("support", "/api/admin/orders", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true for granted rule")
	}

	allow, err = svc.EnforceRole("support", "/api/admin/orders", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false for other method")
	}

	if err := svc.RevokeRolePolicy("support", "/api/admin/orders", "GET"); err != nil {
		t.Fatalf("revoke role policy failed: %v", err)
	}
	allow, err = svc.EnforceRole("support", "/api/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false after revoke")
	}
}

func TestSubjectForRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "admin", want: "role:ADMIN"},
		{in: " ADMIN ", want: "role:ADMIN"},
		{in: "role:support", want: "role:SUPPORT"},
		{in: "", want: "role:"},
	}
	for _, item := range cases {
		got := SubjectForRole(item.in)
		if got != item.want {
			t.Fatalf("subject for role failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/admin/orders/:id", want: "/api/admin/orders/:id"},
		{in: "api/admin/orders", want: "/api/admin/orders"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestGetRolePolicies(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("auditor", "/api/admin/dashboard/stats", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}

	policies, err := svc.GetRolePolicies("auditor")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 1 {
		t.Fatalf("policies want 1 got %d", len(policies))
	}
	if policies[0].Subject != "role:AUDITOR" || policies[0].Object != "/api/admin/dashboard/stats" || policies[0].Action != "GET" {
		t.Fatalf("unexpected policy: %+v", policies[0])
	}
}
