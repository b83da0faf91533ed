package httpx

import (
	"net/http"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/http/ui/viewmodel"
)

// PageMeta names a screen.
type PageMeta struct {
	Title       string
	CurrentPage string
}

// TemplateDataBuilder builds the map a page template renders.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData starts template data with the layout for the request's session.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	layout := buildLayout(r, meta)
	return &TemplateDataBuilder{data: map[string]any{
		"Title":           layout.Title,
		"CurrentPage":     layout.CurrentPage,
		"CSRFToken":       layout.CSRFToken,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
		"IsContractor":    layout.IsContractor,
		"IsCustomer":      layout.IsCustomer,
		"User":            layout.User,
		"Flash":           r.URL.Query().Get("flash"),
	}}
}

func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}
	sess, ok := GetSessionFromContext(r.Context())
	if !ok || sess.IsGuest() {
		return layout
	}
	layout.IsAuthenticated = true
	layout.IsAdmin = sess.Role == domainauth.RoleAdmin
	layout.IsContractor = sess.Role == domainauth.RoleContractor
	layout.IsCustomer = sess.Role == domainauth.RoleCustomer
	layout.User = &viewmodel.User{Name: sess.DisplayName(), Email: sess.Email, Role: string(sess.Role)}
	return layout
}

// WithPagination adds the pager.
func (b *TemplateDataBuilder) WithPagination(p viewmodel.Pagination) *TemplateDataBuilder {
	b.data["Pagination"] = p
	return b
}

// WithError sets the banner message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds per-field messages shown under inputs.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a page-specific value.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
