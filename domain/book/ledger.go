package book

// ExecutionLedger holds the two process-wide execution counters. Both
// only ever grow; they reset only when the process starts. The ledger
// is constructed once, next to the BookPair that feeds it, and passed
// by reference to whoever needs to read it.
type ExecutionLedger struct {
	SharesExecuted int64
	Executions     int64
}

// NewExecutionLedger returns zeroed counters.
func NewExecutionLedger() *ExecutionLedger {
	return &ExecutionLedger{}
}

// recordExecution notes one successful execute command that consumed
// the given number of shares.
func (l *ExecutionLedger) recordExecution(consumed int64) {
	l.Executions++
	l.SharesExecuted += consumed
}
