// Package errors classifies errors into short names for metric tags and log attributes.
package errors

import (
	"context"
	goerrors "errors"
	"net"
	"reflect"
	"strings"
)

// statusCoder is implemented by errors that carry a backend HTTP status.
type statusCoder interface {
	StatusCode() int
}

// Classify returns a normalized error class: "timeout", "canceled", "network", "http_4xx"/"http_5xx" for
// backend status errors, otherwise the snake_cased innermost type name.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	}

	var sc statusCoder
	if goerrors.As(err, &sc) && sc.StatusCode() >= 400 {
		if sc.StatusCode() >= 500 {
			return "http_5xx"
		}
		return "http_4xx"
	}

	var netErr net.Error
	if goerrors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout"
		}
		return "network"
	}

	return typeName(err)
}

func typeName(err error) string {
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
