package middleware

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

func claimsContext(claims jwt.MapClaims) context.Context {
	return context.WithValue(context.Background(), claimsContextKey, claims)
}

func TestGetOrganizationIDFromContext(t *testing.T) {
	ctx := claimsContext(jwt.MapClaims{jwtClaimOrganizationID: "org1", jwtClaimRole: RoleOrganizer})
	id, err := GetOrganizationIDFromContext(ctx)
	if err != nil {
		t.Fatalf("GetOrganizationIDFromContext: %v", err)
	}
	if id != "org1" {
		t.Errorf("organization id = %q, want org1", id)
	}

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no claims in context", context.Background()},
		{"missing claim", claimsContext(jwt.MapClaims{jwtClaimRole: RoleOrganizer})},
		{"empty claim", claimsContext(jwt.MapClaims{jwtClaimOrganizationID: ""})},
		{"non-string claim", claimsContext(jwt.MapClaims{jwtClaimOrganizationID: 42})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GetOrganizationIDFromContext(tt.ctx); err == nil {
				t.Error("GetOrganizationIDFromContext succeeded, want error")
			}
		})
	}
}

func TestGetRoleFromContext(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleOrganizer} {
		got, err := GetRoleFromContext(claimsContext(jwt.MapClaims{jwtClaimRole: role}))
		if err != nil {
			t.Fatalf("GetRoleFromContext(%s): %v", role, err)
		}
		if got != role {
			t.Errorf("role = %q, want %q", got, role)
		}
	}

	if _, err := GetRoleFromContext(claimsContext(jwt.MapClaims{jwtClaimRole: "viewer"})); err == nil {
		t.Error("unknown role accepted, want error")
	}
	if _, err := GetRoleFromContext(context.Background()); err == nil {
		t.Error("missing claims accepted, want error")
	}
}
