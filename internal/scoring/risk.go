package scoring

// RiskLevel grades how far a resume can be trusted, from LOW to CRITICAL.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Risk grades a verification. The first satisfied rule wins: LOW needs both a
// strong trust score and match, HIGH needs only one of them at 30 or more.
func Risk(trustScore, matchPercentage float64) RiskLevel {
	switch {
	case trustScore >= 75 && matchPercentage >= 70:
		return RiskLow
	case trustScore >= 50 && matchPercentage >= 40:
		return RiskMedium
	case trustScore >= 30 || matchPercentage >= 30:
		return RiskHigh
	default:
		return RiskCritical
	}
}
