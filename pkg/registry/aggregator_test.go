package registry

import (
	"reflect"
	"testing"

	"github.com/vitalboard/platform/pkg/common/models"
)

func TestAggregateEmptyCollection(t *testing.T) {
	summary := Aggregate(nil)
	if summary.Count != 0 {
		t.Fatalf("expected count 0, got %d", summary.Count)
	}
	if summary.AverageRisk != nil {
		t.Fatalf("expected no average for empty collection, got %v", *summary.AverageRisk)
	}
	if summary.AverageTier != "" {
		t.Fatalf("expected no average tier, got %q", summary.AverageTier)
	}
	if len(summary.RiskSeries) != 0 || len(summary.Entries) != 0 {
		t.Fatalf("expected empty series and entries, got %+v", summary)
	}
}

func TestAggregateComputesRoundedAverage(t *testing.T) {
	list := []models.Record{
		{Fullname: "A", Age: "70", Risk: 80},
		{Fullname: "B", Age: "40", Risk: 41},
	}
	summary := Aggregate(list)
	if summary.Count != 2 {
		t.Fatalf("expected count 2, got %d", summary.Count)
	}
	if summary.AverageRisk == nil || *summary.AverageRisk != 61 {
		t.Fatalf("expected rounded average 61, got %v", summary.AverageRisk)
	}
	if summary.AverageTier != TierLow {
		t.Fatalf("average 61 is not above 65, expected %q, got %q", TierLow, summary.AverageTier)
	}
	if !reflect.DeepEqual(summary.RiskSeries, []int{80, 41}) {
		t.Fatalf("expected series in collection order, got %v", summary.RiskSeries)
	}
}

func TestAggregateAverageTierBinarySplit(t *testing.T) {
	high := Aggregate([]models.Record{{Risk: 70}, {Risk: 90}})
	if high.AverageTier != TierHigh {
		t.Fatalf("expected high average tier, got %q", high.AverageTier)
	}
	boundary := Aggregate([]models.Record{{Risk: 65}})
	if boundary.AverageTier != TierLow {
		t.Fatalf("average exactly 65 falls on the low side, got %q", boundary.AverageTier)
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		risk int
		want string
	}{
		{100, TierHigh},
		{66, TierHigh},
		{65, TierModerate},
		{31, TierModerate},
		{30, TierLow},
		{0, TierLow},
	}
	for _, tc := range cases {
		if got := Tier(tc.risk); got != tc.want {
			t.Fatalf("risk %d: expected %q, got %q", tc.risk, tc.want, got)
		}
	}
}

func TestRecommendationLabels(t *testing.T) {
	if got := Recommendation(80); got != "Medical follow-up recommended" {
		t.Fatalf("unexpected high label %q", got)
	}
	if got := Recommendation(50); got != "Preventive actions" {
		t.Fatalf("unexpected moderate label %q", got)
	}
	if got := Recommendation(12); got != "Low — maintain" {
		t.Fatalf("unexpected low label %q", got)
	}
}
