// Package viewmodel holds the structs console templates render.
package viewmodel

// User is the signed-in account shown in the header.
type User struct {
	Name  string
	Email string
	Role  string
}

// Layout is the shared page chrome: title, nav state and auth flags.
type Layout struct {
	Title       string
	CurrentPage string
	CSRFToken   string
	// Flash is a one-off message rendered above the content, e.g. after a redirect.
	Flash string

	IsAuthenticated bool
	IsAdmin         bool
	IsContractor    bool
	IsCustomer      bool
	User            *User
}

// LayoutProvider exposes layout metadata to the renderer.
type LayoutProvider interface {
	LayoutData() *Layout
}
