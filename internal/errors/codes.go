package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"

	// CodeBacktrack marks a generation attempt that ran into a contradiction.
	// Only the generation orchestrator recovers from it, by discarding the
	// attempt and starting over on the same random stream.
	CodeBacktrack Code = "BACKTRACK"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Retryable reports whether an operation failing with this code can be
// attempted again without changing its input.
func (c Code) Retryable() bool {
	switch c {
	case CodeBacktrack, CodeUnavailable:
		return true
	default:
		return false
	}
}
