package fraud

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVerdict(t *testing.T) {
	v, err := DecodeVerdict([]byte(`{
		"fraud_score": 72.4,
		"is_suspicious": true,
		"expected_km": 182345.6,
		"reasons": ["Mileage far below expected for age", "Price above market"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, Verdict{
		FraudScore:   72.4,
		IsSuspicious: true,
		ExpectedKm:   182345.6,
		Reasons:      []string{"Mileage far below expected for age", "Price above market"},
	}, v)
}

func TestDecodeVerdict_MissingReasonsIsEmpty(t *testing.T) {
	for _, body := range []string{
		`{"fraud_score": 10, "is_suspicious": false, "expected_km": 1000}`,
		`{"fraud_score": 10, "is_suspicious": false, "expected_km": 1000, "reasons": null}`,
	} {
		v, err := DecodeVerdict([]byte(body))
		require.NoError(t, err)
		assert.NotNil(t, v.Reasons)
		assert.Empty(t, v.Reasons)
	}
}

func TestDecodeVerdict_IgnoresExtraKeys(t *testing.T) {
	v, err := DecodeVerdict([]byte(`{"fraud_score": 1, "is_suspicious": false, "expected_km": 2, "model": "v3"}`))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.FraudScore)
}

func TestDecodeVerdict_Malformed(t *testing.T) {
	cases := []struct {
		body string
		want error
	}{
		{``, ErrInvalidVerdictShape},
		{`null`, ErrInvalidVerdictShape},
		{`[1,2]`, ErrInvalidVerdictShape},
		{`"ok"`, ErrInvalidVerdictShape},
		{`<html>oops</html>`, ErrInvalidVerdictShape},
		{`{}`, ErrMissingScore},
		{`{"fraud_score": 3}`, ErrMissingSuspicion},
		{`{"fraud_score": 3, "is_suspicious": true}`, ErrMissingExpectedKm},
	}
	for _, tc := range cases {
		_, err := DecodeVerdict([]byte(tc.body))
		assert.True(t, errors.Is(err, tc.want), "body=%q err=%v", tc.body, err)
	}

	for _, body := range []string{
		`{"fraud_score": "high", "is_suspicious": true, "expected_km": 1}`,
		`{"fraud_score": 3, "is_suspicious": true, "expected_km": 1`,
		`{"fraud_score": 3, "is_suspicious": true, "expected_km": 1, "reasons": "none"}`,
	} {
		_, err := DecodeVerdict([]byte(body))
		assert.Error(t, err, "body=%q", body)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-5))
	assert.Equal(t, 100.0, ClampScore(140))
	assert.Equal(t, 42.5, ClampScore(42.5))
	assert.Equal(t, 0.0, ClampScore(math.NaN()))
	assert.Equal(t, 100.0, ClampScore(math.Inf(1)))
}

func TestVerdict_DisplayLeavesVerdictUntouched(t *testing.T) {
	v := Verdict{FraudScore: 130, ExpectedKm: 99999.5}

	assert.Equal(t, 100.0, v.DisplayScore())
	assert.Equal(t, int64(100), v.ScorePercent())
	assert.Equal(t, int64(100000), v.RoundedExpectedKm())
	assert.Equal(t, 130.0, v.FraudScore)
	assert.Equal(t, RiskLevelHigh, v.Classification().Level)
}

func TestVerdict_ScorePercentRounds(t *testing.T) {
	assert.Equal(t, int64(70), Verdict{FraudScore: 69.5}.ScorePercent())
	assert.Equal(t, int64(69), Verdict{FraudScore: 69.4}.ScorePercent())
	assert.Equal(t, int64(0), Verdict{FraudScore: -3}.ScorePercent())
}

func TestVerdict_RoundedExpectedKmNonFinite(t *testing.T) {
	assert.Equal(t, int64(0), Verdict{ExpectedKm: math.NaN()}.RoundedExpectedKm())
	assert.Equal(t, int64(0), Verdict{ExpectedKm: math.Inf(1)}.RoundedExpectedKm())
}

func TestVerdict_RoundedExpectedKmSaturates(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt64), Verdict{ExpectedKm: 1e300}.RoundedExpectedKm())
	assert.Equal(t, int64(math.MaxInt64), Verdict{ExpectedKm: math.MaxInt64}.RoundedExpectedKm())
	assert.Equal(t, int64(math.MinInt64), Verdict{ExpectedKm: -1e300}.RoundedExpectedKm())
	assert.Equal(t, int64(187654), Verdict{ExpectedKm: 187654.4}.RoundedExpectedKm())
}
