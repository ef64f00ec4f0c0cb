package check

import "errors"

var (
	// Submission gate errors; none of these reach the network
	ErrBusy           = errors.New("a fraud check is already in progress")
	ErrNotSubmittable = errors.New("form is not ready to submit")
	ErrResultsShown   = errors.New("results are shown; start a new check first")

	// Mode errors
	ErrNoResults = errors.New("no results to leave")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
