package check

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"truemeter-client/internal/domain/fraud"
	"truemeter-client/internal/domain/vehicle"
)

// Mode is the screen the orchestrator is on
type Mode string

const (
	ModeForm    Mode = "form"
	ModeResults Mode = "results"
)

// Scorer submits one frozen query and reports what happened
type Scorer interface {
	Submit(ctx context.Context, query vehicle.Query) fraud.Outcome
}

// Orchestrator owns the form, drives one submission at a time and decides
// which screen is showing.
//
// The busy flag is the only exclusion mechanism: a submit while busy is
// rejected, never queued. There is no client-side timeout: a request, once
// issued, runs to completion and its result is applied, so a hung request
// keeps the orchestrator busy. Callers pass a context that is not cancelled
// when their own connection goes away.
type Orchestrator struct {
	scorer Scorer
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	query   vehicle.Query
	mode    Mode
	busy    bool
	errMsg  string
	verdict *fraud.Verdict
}

// NewOrchestrator creates an orchestrator on a fresh form
func NewOrchestrator(scorer Scorer, logger *zap.Logger, now func() time.Time) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		scorer: scorer,
		logger: logger,
		now:    now,
		query:  vehicle.NewQuery(now()),
		mode:   ModeForm,
	}
}

// Update applies raw text typed into a field
func (o *Orchestrator) Update(field vehicle.Field, raw string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.mode != ModeForm {
		return ErrResultsShown
	}
	return o.query.Set(field, raw)
}

// Submittable reports whether the submit control should be enabled
func (o *Orchestrator) Submittable() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode == ModeForm && !o.busy && vehicle.Submittable(o.query)
}

// Submit sends the current form to the scorer and applies the outcome.
// The returned error is only set when the gate rejected the attempt; request
// failures are reported through the outcome and the exposed error message.
func (o *Orchestrator) Submit(ctx context.Context) (fraud.Outcome, error) {
	o.mu.Lock()
	switch {
	case o.busy:
		o.mu.Unlock()
		return fraud.Outcome{}, ErrBusy
	case o.mode != ModeForm:
		o.mu.Unlock()
		return fraud.Outcome{}, ErrResultsShown
	}
	if err := vehicle.Validate(o.query); err != nil {
		o.mu.Unlock()
		return fraud.Outcome{}, fmt.Errorf("%w: %w", ErrNotSubmittable, err)
	}

	o.errMsg = ""
	o.busy = true
	frozen := o.query
	o.mu.Unlock()

	outcome := o.scorer.Submit(ctx, frozen)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.busy = false

	if !outcome.OK() {
		failure := outcome.Failure
		if failure == nil {
			failure = fraud.NewProtocolFailure(0, fraud.ErrInvalidVerdictShape)
			outcome = fraud.Failed(failure)
		}
		o.errMsg = failure.Message()
		o.logger.Debug("fraud check failed, staying on form", zap.String("kind", string(failure.Kind)))
		return outcome, nil
	}

	o.verdict = outcome.Verdict
	o.mode = ModeResults
	o.logger.Debug("fraud check complete, showing results",
		zap.Float64("fraud_score", outcome.Verdict.FraudScore),
		zap.String("risk_level", string(outcome.Verdict.Classification().Level)),
	)
	return outcome, nil
}

// Reset leaves the results screen for a fresh form
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.mode != ModeResults {
		return ErrNoResults
	}

	o.mode = ModeForm
	o.verdict = nil
	o.errMsg = ""
	o.query = vehicle.NewQuery(o.now())
	o.logger.Debug("new check requested")
	return nil
}

// Display is the presentation of a verdict
type Display struct {
	Classification fraud.Classification `json:"classification"`
	ScorePercent   int64                `json:"score_percent"`
	Score          float64              `json:"score"` // clamped to [0,100]
	ExpectedKm     int64                `json:"expected_km"`
}

// State is a snapshot of everything the presentation layer renders
type State struct {
	Mode        Mode           `json:"mode"`
	Query       vehicle.Query  `json:"query"`
	Busy        bool           `json:"busy"`
	Submittable bool           `json:"submittable"`
	Problems    []string       `json:"problems,omitempty"`
	Error       string         `json:"error,omitempty"`
	Verdict     *fraud.Verdict `json:"verdict,omitempty"`
	Display     *Display       `json:"display,omitempty"`
}

// State returns a snapshot of the orchestrator
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := State{
		Mode:  o.mode,
		Query: o.query,
		Busy:  o.busy,
		Error: o.errMsg,
	}

	problems := vehicle.Problems(o.query)
	st.Submittable = o.mode == ModeForm && !o.busy && len(problems) == 0
	for _, p := range problems {
		st.Problems = append(st.Problems, p.Wrapped.Error())
	}

	if o.verdict != nil {
		v := *o.verdict
		v.Reasons = append([]string(nil), o.verdict.Reasons...)
		st.Verdict = &v
		st.Display = &Display{
			Classification: v.Classification(),
			ScorePercent:   v.ScorePercent(),
			Score:          v.DisplayScore(),
			ExpectedKm:     v.RoundedExpectedKm(),
		}
	}

	return st
}
