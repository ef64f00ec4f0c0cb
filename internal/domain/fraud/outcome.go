package fraud

import "fmt"

// FailureKind tags why a request attempt did not produce a verdict
type FailureKind string

const (
	FailureTransport FailureKind = "transport" // DNS, refused connection, reset, cancelled
	FailureService   FailureKind = "service"   // non-2xx status
	FailureProtocol  FailureKind = "protocol"  // 2xx with a body that is not a verdict
)

// Failure describes one failed request attempt
type Failure struct {
	Kind       FailureKind
	StatusCode int    // set for service and protocol failures
	Body       string // verbatim response body for service failures
	Err        error  // underlying transport or decode error
}

// NewTransportFailure wraps an error raised before any response arrived
func NewTransportFailure(err error) *Failure {
	return &Failure{Kind: FailureTransport, Err: err}
}

// NewServiceFailure records a non-2xx status and its body
func NewServiceFailure(status int, body string) *Failure {
	return &Failure{Kind: FailureService, StatusCode: status, Body: body}
}

// NewProtocolFailure records a 2xx response that could not be decoded
func NewProtocolFailure(status int, err error) *Failure {
	return &Failure{Kind: FailureProtocol, StatusCode: status, Err: err}
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailureTransport:
		return fmt.Sprintf("%s: %v", ErrTransport, f.Err)
	case FailureService:
		return fmt.Sprintf("%s: %d - %s", ErrService, f.StatusCode, f.Body)
	case FailureProtocol:
		return fmt.Sprintf("%s (status %d): %v", ErrProtocol, f.StatusCode, f.Err)
	}
	return fmt.Sprintf("scoring request failed: %v", f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches the sentinel for the failure's kind
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrTransport:
		return f.Kind == FailureTransport
	case ErrService:
		return f.Kind == FailureService
	case ErrProtocol:
		return f.Kind == FailureProtocol
	}
	return false
}

// Message is the text shown to the user in place of the form's error slot
func (f *Failure) Message() string {
	switch f.Kind {
	case FailureTransport:
		return fmt.Sprintf("could not reach scoring service: %v", f.Err)
	case FailureService:
		return fmt.Sprintf("scoring service error: %d - %s", f.StatusCode, f.Body)
	default:
		return "scoring service returned an unreadable response"
	}
}

// Outcome is the result of a single submit attempt.
// Exactly one of Verdict and Failure is set.
type Outcome struct {
	Verdict *Verdict
	Failure *Failure
}

// Succeeded builds a successful outcome
func Succeeded(v Verdict) Outcome {
	return Outcome{Verdict: &v}
}

// Failed builds a failed outcome
func Failed(f *Failure) Outcome {
	return Outcome{Failure: f}
}

// OK reports whether the attempt produced a verdict
func (o Outcome) OK() bool {
	return o.Verdict != nil && o.Failure == nil
}

// Err returns the failure as an error, or nil on success
func (o Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}
