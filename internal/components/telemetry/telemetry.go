package telemetry

import (
	"fmt"
)

// API is where the collector sends everything an operator may want to see: breakages,
// warnings, debug output and counts. Components take an API instead of a logger so tests
// can swap in a RecordingAPI and assert on what got reported.
type API interface {
	// ReportBroken reports a failure the operator has to act on, a page that could not be
	// fetched or a batch of reviews that did not make it into the database.
	//
	// `id` names the component and operation, never the individual failure. A transport
	// error while fetching page 3 of a business' reviews is reported as
	// `collector.reviews`, the page number and the wrapped error go into params.
	// The namespace added by ScopedAPI already says which package reported it, so
	// `client.fetch` is enough inside the trustpilot client.
	//
	// ids are lowercase, words in a component name are joined with underscores and the
	// operation is separated from the component by a dot. See the `report_...` constants.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something odd that did not stop collection, like a review
	// card that could not be assembled and was skipped. `id` follows the ReportBroken rules.
	ReportWarning(id string, params ...any)

	// ReportDebug is only visible when debug output is enabled.
	ReportDebug(msg string, params ...any)

	// ReportCount records a gauge-like sample, ex. the number of reviews in a collection
	// run. Samples are points over time and are not meant to be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id and debug message with a namespace, one per package.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
