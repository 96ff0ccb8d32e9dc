package dispatch

// Summary is the outcome of one dispatch run.
type Summary struct {
	Sent         int
	Failed       int
	Skipped      int
	LimitReached bool
	Canceled     bool
}

// PlanInfo is what the operator sees at the confirmation gate, before any
// irreversible send happens.
type PlanInfo struct {
	Recipients int
	Skipped    int
	Subject    string
	Limit      int
}

// Confirm gates the transition from AwaitingStart to Sending. Returning false
// finishes the run cleanly with zero sends.
type Confirm func(PlanInfo) bool

// Progress receives one call per attempted recipient; err is nil on success.
type Progress func(email string, err error)

// Config is the campaign portion the engine needs. It is read once and never
// mutated during a run.
type Config struct {
	Subject  string
	HTMLBody string

	// Limit caps successful sends per run. -1 means unlimited; 0 is invalid
	// and rejected before any side effect.
	Limit int

	FromName string
	FromAddr string

	// PerSecond throttles send attempts. 0 disables the limiter.
	PerSecond int
}
