package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/http/ui/viewmodel"
)

func TestNewTemplateData_Anonymous(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/auth/login?flash=Signed+out.", nil)
	data := NewTemplateData(r, PageMeta{Title: "Sign in", CurrentPage: PageLogin}).Build()

	assert.Equal(t, "Sign in", data["Title"])
	assert.Equal(t, PageLogin, data["CurrentPage"])
	assert.Equal(t, "Signed out.", data["Flash"])
	assert.Equal(t, false, data["IsAuthenticated"])
	assert.Equal(t, false, data["IsAdmin"])
	assert.Nil(t, data["User"])
}

func TestNewTemplateData_RoleFlags(t *testing.T) {
	tests := []struct {
		role                 domainauth.Role
		admin, contr, custom bool
	}{
		{role: domainauth.RoleAdmin, admin: true},
		{role: domainauth.RoleContractor, contr: true},
		{role: domainauth.RoleCustomer, custom: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			sess := &domainauth.Session{ID: "s", FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Role: tt.role}
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = r.WithContext(SetSessionInContext(r.Context(), sess))

			data := NewTemplateData(r, PageMeta{CurrentPage: PageHome}).Build()

			assert.Equal(t, true, data["IsAuthenticated"])
			assert.Equal(t, tt.admin, data["IsAdmin"])
			assert.Equal(t, tt.contr, data["IsContractor"])
			assert.Equal(t, tt.custom, data["IsCustomer"])
			assert.Equal(t, &viewmodel.User{Name: "Ann Lee", Email: "ann@example.com", Role: string(tt.role)}, data["User"])
		})
	}
}

func TestTemplateDataBuilder(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/disputes", nil)
	pager := viewmodel.Pagination{HasNext: true, StartIndex: 1, EndIndex: 25, TotalCount: 40, NextURL: "/admin/disputes?offset=25"}

	data := NewTemplateData(r, PageMeta{Title: "Disputes", CurrentPage: PageDisputes}).
		WithPagination(pager).
		WithError("Please fix the errors below.").
		WithFieldErrors(map[string]string{"status": "Status is required."}).
		With("Disputes", []string{"d-1"}).
		Build()

	assert.Equal(t, pager, data["Pagination"])
	assert.Equal(t, true, data["Error"])
	assert.Equal(t, "Please fix the errors below.", data["ErrorMessage"])
	assert.Equal(t, map[string]string{"status": "Status is required."}, data["Errors"])
	assert.Equal(t, []string{"d-1"}, data["Disputes"])
}

func TestTemplateDataBuilder_EmptyFieldErrorsOmitted(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	data := NewTemplateData(r, PageMeta{}).WithFieldErrors(nil).Build()

	_, ok := data["Errors"]
	assert.False(t, ok)
}
