package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"p9e.in/homepro/models"
)

func TestClaimsAccessorsWithoutToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/me", nil)

	if c := GetClaims(r); c != nil {
		t.Errorf("GetClaims on a bare request = %+v, expected nil", c)
	}
	if id := GetUserID(r); id != "" {
		t.Errorf("GetUserID on a bare request = %q, expected empty", id)
	}
	if ut := GetUserType(r); ut != "" {
		t.Errorf("GetUserType on a bare request = %q, expected empty", ut)
	}
	if p := GetProfile(r); p.Email != "" || p.FullName != "" {
		t.Errorf("GetProfile on a bare request = %+v, expected zero value", p)
	}
}

func TestClaimsAccessorsWithClaims(t *testing.T) {
	claims := &Claims{
		UserID:   "a2f51f8e-0000-4000-8000-000000000001",
		Name:     "Dana Smith",
		Email:    "dana@example.com",
		UserType: string(models.UserTypeContractor),
	}
	r := httptest.NewRequest("GET", "/api/v1/me", nil)
	r = r.WithContext(context.WithValue(r.Context(), userClaimsKey, claims))

	if got := GetUserID(r); got != claims.UserID {
		t.Errorf("GetUserID = %q, expected %q", got, claims.UserID)
	}
	if got := GetUserType(r); got != claims.UserType {
		t.Errorf("GetUserType = %q, expected %q", got, claims.UserType)
	}
	if got := GetClaims(r); got != claims {
		t.Errorf("GetClaims did not return the stored claims")
	}
}
