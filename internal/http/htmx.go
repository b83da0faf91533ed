package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was initiated by htmx (Hx-Request: true).
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// IsBoosted reports whether the request came from hx-boost navigation.
func IsBoosted(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Boosted"), "true")
}

// WantsPartial reports whether only the main fragment should be rendered.
// Boosted navigations swap the whole body, so they get the full layout.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r)
}

// ToastLevel styles a toast.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastInfo    ToastLevel = "info"
)

// Toast is the payload of the showToast client event.
type Toast struct {
	Message string     `json:"message"`
	Level   ToastLevel `json:"type"`
}

// HXResponse sets htmx response headers fluently.
type HXResponse struct {
	w       http.ResponseWriter
	trigger map[string]any
}

// HTMX starts an htmx response on w.
func HTMX(w http.ResponseWriter) *HXResponse {
	return &HXResponse{w: w}
}

// Redirect makes htmx navigate the browser to url.
func (h *HXResponse) Redirect(url string) *HXResponse {
	h.w.Header().Set("Hx-Redirect", url)
	return h
}

// PushURL records url in browser history for the swapped content.
func (h *HXResponse) PushURL(url string) *HXResponse {
	h.w.Header().Set("Hx-Push-Url", url)
	return h
}

// Refresh forces a full page reload.
func (h *HXResponse) Refresh() *HXResponse {
	h.w.Header().Set("Hx-Refresh", "true")
	return h
}

// Reswap overrides the element's hx-swap, e.g. "none" so a failed submit leaves the page untouched.
func (h *HXResponse) Reswap(swap string) *HXResponse {
	h.w.Header().Set("Hx-Reswap", swap)
	return h
}

// Trigger fires event on the client after the swap. Multiple events merge into one header.
func (h *HXResponse) Trigger(event string, payload any) *HXResponse {
	if h.trigger == nil {
		h.trigger = make(map[string]any)
	}
	if payload == nil {
		payload = true
	}
	h.trigger[event] = payload
	b, err := json.Marshal(h.trigger)
	if err != nil {
		h.w.Header().Set("Hx-Trigger", event)
		return h
	}
	h.w.Header().Set("Hx-Trigger", string(b))
	return h
}

// Toast fires the showToast event.
func (h *HXResponse) Toast(level ToastLevel, message string) *HXResponse {
	return h.Trigger("showToast", Toast{Message: message, Level: level})
}
