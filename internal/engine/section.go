package engine

import (
	"time"

	"github.com/lakshaymaurya-felt/dirclean/internal/report"
)

// Report accumulates sections across the operations of one invocation.
type Report struct {
	data report.Data
}

// NewReport starts an empty report.
func NewReport(dryRun bool) *Report {
	return &Report{data: report.Data{Generated: time.Now(), DryRun: dryRun}}
}

// Add appends one section for a deleting outcome. Other outcomes are
// ignored.
func (r *Report) Add(out Outcome) {
	if out.Result == nil {
		return
	}
	r.data.Sections = append(r.data.Sections, report.FromRecords(out.Title, out.Result.Records))
	r.data.TotalBytes += out.Result.TotalBytes
}

// Data returns the report content.
func (r *Report) Data() report.Data {
	return r.data
}

// Write renders the report to path with the package's fallback rule.
func (r *Report) Write(path, fallbackDir string) (string, error) {
	return report.Write(path, fallbackDir, r.data)
}
