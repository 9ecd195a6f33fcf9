package metrics

import "time"

// LinkResult enumerates the outcomes of a link candidate.
type LinkResult string

const (
	LinkRewritten    LinkResult = "rewritten"
	LinkBroken       LinkResult = "broken"
	LinkUnregistered LinkResult = "unregistered"
	LinkSkipped      LinkResult = "skipped"
)

// BuildOutcome enumerates final build states.
type BuildOutcome string

const (
	BuildSuccess  BuildOutcome = "success"
	BuildWarning  BuildOutcome = "warning"
	BuildFailed   BuildOutcome = "failed"
	BuildCanceled BuildOutcome = "canceled"
)

// Recorder defines observability hooks for link rewriting and build passes.
// Implementations must be safe for concurrent use.
type Recorder interface {
	IncLinkResult(result LinkResult)
	ObserveDocumentDuration(d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcome)
	SetIndexSize(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncLinkResult(LinkResult)              {}
func (NoopRecorder) ObserveDocumentDuration(time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)    {}
func (NoopRecorder) IncBuildOutcome(BuildOutcome)          {}
func (NoopRecorder) SetIndexSize(int)                      {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
