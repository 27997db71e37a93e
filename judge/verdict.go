package judge

// Status is the closed set of terminal judging outcomes.
type Status string

const (
	StatusAccepted            Status = "accepted"
	StatusWrongAnswer         Status = "wrong_answer"
	StatusCompilationError    Status = "compilation_error"
	StatusRuntimeError        Status = "runtime_error"
	StatusTimeLimitExceeded   Status = "time_limit_exceeded"
	StatusMemoryLimitExceeded Status = "memory_limit_exceeded"
	StatusSecurityError       Status = "security_error"
	StatusPresentationError   Status = "presentation_error"
)

// Verdict is the judge's answer for one submission. Every submission gets
// exactly one; transport failures are mapped to a terminal verdict by the
// client rather than surfaced as errors.
type Verdict struct {
	Status     Status
	ExecTimeMs int64
}

func (v Verdict) Accepted() bool {
	return v.Status == StatusAccepted
}
