package rxnorm

import (
	"strings"

	"github.com/dosewise/dosewise-api/internal/domain"
)

// parseSeverity maps the provider's free-form severity strings onto the
// domain scale. Unrecognized values become unknown so a new provider label
// is treated cautiously instead of being dropped.
func parseSeverity(s string) domain.Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "minor":
		return domain.SeverityLow
	case "moderate", "medium":
		return domain.SeverityModerate
	case "high", "major":
		return domain.SeverityHigh
	case "severe", "critical":
		return domain.SeveritySevere
	default:
		return domain.SeverityUnknown
	}
}
