package errors

// Code identifies a class of failure.
type Code int

const (
	CodeUnknown Code = 1

	// Validation errors (100-199)
	CodeInvalidParameter     Code = 100
	CodeInvalidConfiguration Code = 101

	// Data errors (200-299)
	CodeInsufficientHistory Code = 200
	CodeMissingSeries       Code = 201

	// Venue errors (300-399)
	CodeFetchFailure      Code = 300
	CodeSubmissionFailure Code = 301
	CodeOrderRejected     Code = 302
)

func (c Code) String() string {
	switch c {
	case CodeInvalidParameter:
		return "invalid_parameter"
	case CodeInvalidConfiguration:
		return "invalid_configuration"
	case CodeInsufficientHistory:
		return "insufficient_history"
	case CodeMissingSeries:
		return "missing_series"
	case CodeFetchFailure:
		return "fetch_failure"
	case CodeSubmissionFailure:
		return "submission_failure"
	case CodeOrderRejected:
		return "order_rejected"
	default:
		return "unknown"
	}
}
