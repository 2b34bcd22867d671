package registry

import (
	"math"

	"github.com/vitalboard/platform/pkg/common/models"
)

// Risk tiers derived from a numeric score for display. Boundary values fall
// into the lower-severity band: 65 is moderate, 30 is low.
const (
	TierHigh     = "high"
	TierModerate = "moderate"
	TierLow      = "low"
)

func Tier(score int) string {
	if score > 65 {
		return TierHigh
	}
	if score > 30 {
		return TierModerate
	}
	return TierLow
}

func Recommendation(score int) string {
	switch Tier(score) {
	case TierHigh:
		return "Medical follow-up recommended"
	case TierModerate:
		return "Preventive actions"
	default:
		return "Low — maintain"
	}
}

// Aggregate derives the dashboard summary from a collection. The average is
// absent for an empty collection instead of a division error, and the
// collection-level tier is the simplified binary split at 65.
func Aggregate(list []models.Record) models.DashboardSummary {
	summary := models.DashboardSummary{
		Count:      len(list),
		RiskSeries: make([]int, 0, len(list)),
		Entries:    make([]models.EntrySummary, 0, len(list)),
	}

	sum := 0
	for _, rec := range list {
		sum += rec.Risk
		summary.RiskSeries = append(summary.RiskSeries, rec.Risk)
		summary.Entries = append(summary.Entries, models.EntrySummary{
			Fullname:       rec.Fullname,
			Age:            rec.Age,
			Risk:           rec.Risk,
			Tier:           Tier(rec.Risk),
			Recommendation: Recommendation(rec.Risk),
		})
	}

	if len(list) > 0 {
		avg := int(math.Round(float64(sum) / float64(len(list))))
		summary.AverageRisk = &avg
		if avg > 65 {
			summary.AverageTier = TierHigh
		} else {
			summary.AverageTier = TierLow
		}
	}

	return summary
}
