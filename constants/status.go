package constants

// OutcomeStatus is the canonical per-document result of a batch run.
type OutcomeStatus string

// Stable values (callers may persist these exact strings).
const (
	OutcomeOK       OutcomeStatus = "OK"        // record produced
	OutcomeNoData   OutcomeStatus = "NO_DATA"   // empty or unrecognized input
	OutcomeNoRecord OutcomeStatus = "NO_RECORD" // mandatory identifying fields missing
	OutcomeTimeout  OutcomeStatus = "TIMEOUT"   // wall-clock budget exceeded
	OutcomeFailed   OutcomeStatus = "FAILED"    // any other failure
)
