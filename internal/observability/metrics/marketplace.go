// Package metrics holds the console's metric vocabulary.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/target/marketplace-console/internal/observability/errors"
	"github.com/target/marketplace-console/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// BackendCall describes one request to the marketplace backend.
type BackendCall struct {
	Resource string
	Method   string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitBackendCall records marketplace.request count and timing.
func EmitBackendCall(sink statsd.Sink, in BackendCall) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"resource":     in.Resource,
		"method":       in.Method,
		"status_class": StatusClass(in.Status),
		"result":       ResultSuccess,
	}
	if in.Err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(in.Err)
	}

	sink.Count("marketplace.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("marketplace.request.duration", in.Duration, CloneTags(tags))
	}
}

// WorkflowAction describes one workflow button submission.
type WorkflowAction struct {
	Action string
	Role   string
	Result string
	Err    error
}

// EmitWorkflowAction counts workflow submissions by outcome.
func EmitWorkflowAction(sink statsd.Sink, in WorkflowAction) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"action": in.Action,
		"role":   in.Role,
		"result": in.Result,
	}
	if in.Err != nil {
		tags["error_class"] = obserrors.Classify(in.Err)
	}
	sink.Count("workflow.action", 1, tags)
}

// HTTPRequest describes one request served by the console.
type HTTPRequest struct {
	// Area groups routes: "api", "ui", "auth" or "static".
	Area     string
	Method   string
	Status   int
	Duration time.Duration
}

// EmitHTTPRequest records http.request count and timing.
func EmitHTTPRequest(sink statsd.Sink, in HTTPRequest) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"area":         in.Area,
		"method":       in.Method,
		"status_class": StatusClass(in.Status),
	}
	sink.Count("http.request", 1, tags)
	sink.Timing("http.request.duration", in.Duration, CloneTags(tags))
}

// LedgerPurge describes one ledger janitor pass.
type LedgerPurge struct {
	Deleted  int64
	Duration time.Duration
	Err      error
}

// EmitLedgerPurge records ledger.purge count, rows removed and timing.
func EmitLedgerPurge(sink statsd.Sink, in LedgerPurge) {
	if sink == nil {
		return
	}
	tags := map[string]string{"result": ResultSuccess}
	if in.Err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(in.Err)
	}
	sink.Count("ledger.purge", 1, tags)
	if in.Err == nil {
		sink.Gauge("ledger.purge.deleted", float64(in.Deleted), nil)
	}
	sink.Timing("ledger.purge.duration", in.Duration, CloneTags(tags))
}

// StatusClass buckets an HTTP status as "2xx", "4xx"...; 0 (no response) is "none".
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
