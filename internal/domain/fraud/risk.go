package fraud

// RiskLevel represents the severity of odometer fraud risk
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Tier thresholds; a score equal to a threshold belongs to the higher tier
const (
	HighRiskThreshold   = 70.0
	MediumRiskThreshold = 40.0
)

// ColorPair is the two-stop gradient a tier is drawn with
type ColorPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Classification is what the presentation layer needs to draw a verdict
type Classification struct {
	Level  RiskLevel `json:"level"`
	Label  string    `json:"label"`
	Colors ColorPair `json:"colors"`
}

var classifications = map[RiskLevel]Classification{
	RiskLevelHigh: {
		Level:  RiskLevelHigh,
		Label:  "HIGH RISK",
		Colors: ColorPair{From: "#EF4444", To: "#B91C1C"},
	},
	RiskLevelMedium: {
		Level:  RiskLevelMedium,
		Label:  "MEDIUM RISK",
		Colors: ColorPair{From: "#F59E0B", To: "#B45309"},
	},
	RiskLevelLow: {
		Level:  RiskLevelLow,
		Label:  "LOW RISK",
		Colors: ColorPair{From: "#10B981", To: "#059669"},
	},
}

// LevelFor maps a fraud score onto a risk level.
// Out-of-range scores land in the same tier their clamped value would.
func LevelFor(score float64) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskLevelHigh
	case score >= MediumRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// Classify returns the tier, label and colors for a fraud score
func Classify(score float64) Classification {
	return classifications[LevelFor(score)]
}
