package telemetry

import "sync"

// Report is a single call made against a RecordingAPI.
type Report struct {
	Kind   string
	Id     string
	Params []any
	Count  int64
}

const (
	KIND_BROKEN  = "broken"
	KIND_WARNING = "warning"
	KIND_DEBUG   = "debug"
	KIND_COUNT   = "count"
)

// RecordingAPI keeps every report in memory so tests can assert on what a component
// reported. The zero value is ready to use.
type RecordingAPI struct {
	lock    sync.Mutex
	reports []Report
}

func (r *RecordingAPI) record(report Report) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.reports = append(r.reports, report)
}

func (r *RecordingAPI) ReportBroken(id string, params ...any) {
	r.record(Report{Kind: KIND_BROKEN, Id: id, Params: params})
}

func (r *RecordingAPI) ReportWarning(id string, params ...any) {
	r.record(Report{Kind: KIND_WARNING, Id: id, Params: params})
}

func (r *RecordingAPI) ReportDebug(msg string, params ...any) {
	r.record(Report{Kind: KIND_DEBUG, Id: msg, Params: params})
}

func (r *RecordingAPI) ReportCount(id string, count int64) {
	r.record(Report{Kind: KIND_COUNT, Id: id, Count: count})
}

// Reports returns a copy of the reports of the given kind, or all of them if kind is empty.
func (r *RecordingAPI) Reports(kind string) []Report {
	r.lock.Lock()
	defer r.lock.Unlock()

	var out []Report
	for _, report := range r.reports {
		if kind == "" || report.Kind == kind {
			out = append(out, report)
		}
	}
	return out
}
