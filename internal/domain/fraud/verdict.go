package fraud

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Verdict is the scoring service's answer for one vehicle
type Verdict struct {
	FraudScore   float64  `json:"fraud_score"` // 0 to 100, as promised by the service
	IsSuspicious bool     `json:"is_suspicious"`
	ExpectedKm   float64  `json:"expected_km"` // model's odometer estimate
	Reasons      []string `json:"reasons"`     // human-readable anomalies, possibly empty
}

// wireVerdict detects missing keys, which a plain Verdict would zero-fill
type wireVerdict struct {
	FraudScore   *float64 `json:"fraud_score"`
	IsSuspicious *bool    `json:"is_suspicious"`
	ExpectedKm   *float64 `json:"expected_km"`
	Reasons      []string `json:"reasons"`
}

// DecodeVerdict parses a success body into a Verdict.
// The body must be a JSON object carrying fraud_score, is_suspicious and
// expected_km; reasons may be absent or null.
func DecodeVerdict(body []byte) (Verdict, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Verdict{}, ErrInvalidVerdictShape
	}

	var w wireVerdict
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return Verdict{}, fmt.Errorf("decode verdict: %w", err)
	}

	switch {
	case w.FraudScore == nil:
		return Verdict{}, ErrMissingScore
	case w.IsSuspicious == nil:
		return Verdict{}, ErrMissingSuspicion
	case w.ExpectedKm == nil:
		return Verdict{}, ErrMissingExpectedKm
	}

	reasons := w.Reasons
	if reasons == nil {
		reasons = make([]string, 0)
	}

	return Verdict{
		FraudScore:   *w.FraudScore,
		IsSuspicious: *w.IsSuspicious,
		ExpectedKm:   *w.ExpectedKm,
		Reasons:      reasons,
	}, nil
}

// ClampScore bounds a score to [0,100] for display. NaN is shown as 0.
func ClampScore(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return MinScore
	case score < MinScore:
		return MinScore
	case score > MaxScore:
		return MaxScore
	}
	return score
}

// DisplayScore returns the clamped score; the verdict itself is left untouched
func (v Verdict) DisplayScore() float64 {
	return ClampScore(v.FraudScore)
}

// ScorePercent is the clamped score rounded to a whole percent
func (v Verdict) ScorePercent() int64 {
	return decimal.NewFromFloat(v.DisplayScore()).Round(0).IntPart()
}

// RoundedExpectedKm is the expected odometer reading rounded to whole km.
// Readings beyond the int64 range saturate.
func (v Verdict) RoundedExpectedKm() int64 {
	switch {
	case math.IsNaN(v.ExpectedKm) || math.IsInf(v.ExpectedKm, 0):
		return 0
	case v.ExpectedKm >= math.MaxInt64:
		return math.MaxInt64
	case v.ExpectedKm <= math.MinInt64:
		return math.MinInt64
	}
	return decimal.NewFromFloat(v.ExpectedKm).Round(0).IntPart()
}

// Classification is the display-ready tier for this verdict
func (v Verdict) Classification() Classification {
	return Classify(v.FraudScore)
}
