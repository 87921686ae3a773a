package clean

import "github.com/lakshaymaurya-felt/dirclean/internal/scan"

// Status is the result of one deletion attempt.
type Status int

const (
	StatusDeleted Status = iota
	StatusWouldDelete
	StatusSkipped
	StatusFailed
)

var statusNames = [...]string{"Deleted", "Would delete", "Skipped", "Failed"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "Unknown"
}

// OutcomeRecord is produced exactly once for every candidate that reaches
// the Deleter and is never modified afterwards.
type OutcomeRecord struct {
	Path     string
	Category scan.Category

	// Bytes is the space reclaimed, or for a dry run the space that would
	// be reclaimed. It is 0 for skips and failures.
	Bytes int64

	Status  Status
	Trashed bool

	// Reason explains a skip or failure.
	Reason error
}

// Succeeded reports whether the record counts toward a run's totals.
// Deleted and would-delete records count when they free space; for empty
// directories freeing 0 bytes is the expected success.
func (r OutcomeRecord) Succeeded() bool {
	if r.Status != StatusDeleted && r.Status != StatusWouldDelete {
		return false
	}
	return r.Bytes > 0 || r.Category.ZeroIsSuccess()
}

// StatusText is the label used in logs and reports.
func (r OutcomeRecord) StatusText() string {
	if r.Status == StatusDeleted && r.Trashed {
		return "Moved to trash"
	}
	return r.Status.String()
}

// RunResult aggregates one batch run. In parallel mode Records are in
// completion order; otherwise they follow discovery order.
type RunResult struct {
	Count      int
	TotalBytes int64
	Records    []OutcomeRecord

	// Canceled is set when the run stopped early. The result still holds
	// every outcome collected before that point.
	Canceled bool
}

func (r *RunResult) add(rec OutcomeRecord) {
	r.Records = append(r.Records, rec)
	if rec.Succeeded() {
		r.Count++
		r.TotalBytes += rec.Bytes
	}
}

// Failed returns the number of failed records.
func (r RunResult) Failed() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == StatusFailed {
			n++
		}
	}
	return n
}

// Skipped returns the number of skipped records.
func (r RunResult) Skipped() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == StatusSkipped {
			n++
		}
	}
	return n
}
