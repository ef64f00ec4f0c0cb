package fraud

import "errors"

var (
	// Outcome errors, matched with errors.Is against a *Failure
	ErrTransport = errors.New("scoring service unreachable")
	ErrService   = errors.New("scoring service returned an error status")
	ErrProtocol  = errors.New("scoring service returned a malformed response")

	// Verdict errors
	ErrMissingScore        = errors.New("response is missing fraud_score")
	ErrMissingSuspicion    = errors.New("response is missing is_suspicious")
	ErrMissingExpectedKm   = errors.New("response is missing expected_km")
	ErrInvalidVerdictShape = errors.New("response is not a JSON object")
)
