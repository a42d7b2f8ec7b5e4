package metrics

import "time"

// ResultLabel enumerates per-repository outcomes.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// ResultFor maps an error to its result label.
func ResultFor(err error) ResultLabel {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}

// Recorder defines observability hooks for a run. Repositories are keyed by
// path; the display name is informational since it need not be unique.
type Recorder interface {
	ObserveRepository(repo, path string, d time.Duration, newTags int, result ResultLabel)
	SetCatalogEntries(n int)
	ObserveRun(d time.Duration, repositories, failed int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRepository(string, string, time.Duration, int, ResultLabel) {}
func (NoopRecorder) SetCatalogEntries(int)                                             {}
func (NoopRecorder) ObserveRun(time.Duration, int, int)                                {}
