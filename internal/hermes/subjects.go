package hermes

const (
	StreamName   = "TOPSIS_EVENTS"
	StreamMaxAge = "168h" // 7 days

	subjectRunPrefix = "topsis.run."
)

func SubjectRunCompleted(runID string) string { return subjectRunPrefix + runID + ".completed" }
func SubjectRunFailed(runID string) string    { return subjectRunPrefix + runID + ".failed" }
func SubjectRunEmailed(runID string) string   { return subjectRunPrefix + runID + ".emailed" }
